package model

import "time"

// EducationalContent is the debrief page shown to a target after a
// submission. Effectively a singleton: the first row wins, and a default one
// is created lazily when none exists.
type EducationalContent struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tips      string    `json:"tips"`
	VideoURL  string    `json:"video_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultEducationalContent returns the content used when an administrator
// has not customised the debrief page.
func DefaultEducationalContent() *EducationalContent {
	return &EducationalContent{
		Title: "You've Been Phished! (In a Safe Training Environment)",
		Content: `
        <h2>This was a simulated phishing attack</h2>
        <p>Don't worry - this was a training exercise conducted by your organization's
        security team. No real harm was done, but this demonstrates how easy it is to
        fall for phishing attacks.</p>
        <p>Cybercriminals use similar techniques to steal credentials, install malware,
        and compromise organizations every day.</p>
        `,
		Tips: `
        <ul>
            <li><strong>Check the sender:</strong> Verify email addresses carefully, not just display names</li>
            <li><strong>Hover before clicking:</strong> See the real URL destination before clicking links</li>
            <li><strong>Look for urgency:</strong> Be suspicious of urgent requests for personal information</li>
            <li><strong>Check for mistakes:</strong> Look for spelling and grammar errors</li>
            <li><strong>Verify requests:</strong> Contact the sender through a different channel to confirm</li>
            <li><strong>Use 2FA:</strong> Enable two-factor authentication whenever possible</li>
            <li><strong>Report suspicious emails:</strong> Forward to your IT security team</li>
        </ul>
        `,
	}
}
