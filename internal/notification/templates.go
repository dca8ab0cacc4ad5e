package notification

import (
	"bytes"
	"fmt"
	"html/template"
)

var redemptionEmail = template.Must(template.New("redemption").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: #f7d6e0; padding: 24px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="margin: 0;">{{.Title}}</h1>
	</div>
	<div style="padding: 24px; border: 1px solid #eee; border-radius: 0 0 10px 10px;">
		<p>Hi {{.Name}},</p>
		<p>You redeemed <strong>{{.Reward}}</strong> for {{.Points}} points.</p>
		<p>Keep up your routine to earn more rewards.</p>
	</div>
	<p style="text-align: center; color: #888; font-size: 13px;">Rika Care</p>
</body>
</html>`))

func renderRedemptionEmail(name, reward string, points int) (*EmailMessage, error) {
	const title = "Your reward is on its way"
	var buf bytes.Buffer
	err := redemptionEmail.Execute(&buf, map[string]interface{}{
		"Title":  title,
		"Name":   name,
		"Reward": reward,
		"Points": points,
	})
	if err != nil {
		return nil, err
	}
	return &EmailMessage{
		Subject: title,
		Body:    fmt.Sprintf("Hi %s,\n\nYou redeemed %s for %d points.\n\nRika Care", name, reward, points),
		HTML:    buf.String(),
	}, nil
}

const (
	milestoneTitle  = "Streak milestone!"
	reminderTitle   = "Time for your routine"
	reminderMessage = "Don't break your streak! Complete today's beauty routine in Rika Care."
)
