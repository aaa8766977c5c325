package main

import (
	"context"
	"os"
	"strings"

	"github.com/secsim/phishing-gateway/internal/config"
	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/internal/repository"
	"github.com/secsim/phishing-gateway/pkg/logger"
	"github.com/secsim/phishing-gateway/pkg/pg"
)

// Seeds an admin user and a starter set of templates so a fresh install is
// usable immediately. Safe to re-run: existing records are left alone.
func main() {
	err := config.Load(getEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}
	db, err := pg.CreateReadWrite(writeConf, writeConf, false)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	ctx := context.Background()
	seedAdmin(ctx, repository.NewUserRepository(db))
	seedTemplates(ctx, repository.NewTemplateRepository(db))
}

func seedAdmin(ctx context.Context, users *repository.UserRepository) {
	username := envOr("SEED_ADMIN_USERNAME", "admin")
	password := envOr("SEED_ADMIN_PASSWORD", "admin123")

	if _, err := users.GetByUsername(ctx, username); err == nil {
		logger.Info("admin user already exists, skipping", "username", username)
		return
	}

	u := &model.User{
		Username: username,
		Email:    envOr("SEED_ADMIN_EMAIL", "admin@example.com"),
		Role:     model.RoleAdmin,
	}
	if err := u.SetPassword(password); err != nil {
		logger.Error("failed hashing admin password", "error", err)
		return
	}
	if _, err := users.Create(ctx, u); err != nil {
		logger.Error("failed creating admin user", "error", err)
		return
	}
	logger.Info("admin user created", "username", username)
}

func seedTemplates(ctx context.Context, templates *repository.TemplateRepository) {
	n, err := templates.Count(ctx)
	if err != nil {
		logger.Error("failed counting templates", "error", err)
		return
	}
	if n > 0 {
		logger.Info("templates already present, skipping", "count", n)
		return
	}

	for _, t := range sampleTemplates() {
		if _, err := templates.Create(ctx, t); err != nil {
			logger.Error("failed creating template", "name", t.Name, "error", err)
			return
		}
		logger.Info("template created", "name", t.Name)
	}
}

func sampleTemplates() []*model.Template {
	landing := `<!DOCTYPE html>
<html>
<head><title>Sign in</title></head>
<body>
<h2>Sign in to continue</h2>
<form action="/submit/{{token}}" method="post">
	<input type="email" name="email" placeholder="Email" required>
	<input type="password" name="password" placeholder="Password" required>
	<button type="submit">Sign in</button>
</form>
</body>
</html>`

	return []*model.Template{
		{
			Name:    "IT Password Reset",
			Subject: "Action Required: Your password expires today",
			Body: `<p>Dear {{target_name}},</p>
<p>Our records show the password for <strong>{{target_email}}</strong> expires today.
To keep access to your account, reset it now:</p>
<p><a href="{{tracking_url}}">Reset my password</a></p>
<p>IT Service Desk</p>`,
			LandingPage: landing,
			Category:    "credential_harvesting",
			Difficulty:  "easy",
		},
		{
			Name:    "Package Delivery Notice",
			Subject: "Delivery attempt failed - action needed",
			Body: `<p>Hello {{target_name}},</p>
<p>We attempted to deliver a package to you but no one was available.
Schedule a redelivery within 48 hours or the package will be returned:</p>
<p><a href="{{tracking_url}}">Schedule redelivery</a></p>`,
			LandingPage: landing,
			Category:    "urgent_action",
			Difficulty:  "medium",
		},
		{
			Name:    "CEO Urgent Request",
			Subject: "Quick favor - are you at your desk?",
			Body: `<p>{{target_name}},</p>
<p>I'm heading into a meeting and need you to handle something urgent for me.
Please review the attached payment approval before 3pm:</p>
<p><a href="{{tracking_url}}">Review payment approval</a></p>
<p>Sent from my iPhone</p>`,
			LandingPage: landing,
			Category:    "ceo_fraud",
			Difficulty:  "hard",
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
