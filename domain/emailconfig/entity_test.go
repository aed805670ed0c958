package emailconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() CreateParams {
	return CreateParams{
		UserID:            "user-1",
		ConfigurationName: "billing",
		SMTPHost:          "smtp.example.test",
		SMTPPort:          587,
		SMTPUser:          "mailer",
		SMTPPassword:      "s3cret-pass",
		EmailFrom:         "billing@example.test",
	}
}

func TestNewEmailConfiguration(t *testing.T) {
	cfg, err := NewEmailConfiguration(validParams())
	require.NoError(t, err)

	assert.False(t, cfg.IsDefault())
	assert.True(t, cfg.IsActive())
	assert.True(t, cfg.IsNew())

	events := cfg.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "email_configuration.created", events[0].EventName())
}

func TestNewEmailConfiguration_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateParams)
	}{
		{"missing user", func(p *CreateParams) { p.UserID = "" }},
		{"empty name", func(p *CreateParams) { p.ConfigurationName = " " }},
		{"empty host", func(p *CreateParams) { p.SMTPHost = "" }},
		{"port too low", func(p *CreateParams) { p.SMTPPort = 0 }},
		{"port too high", func(p *CreateParams) { p.SMTPPort = 70000 }},
		{"short password", func(p *CreateParams) { p.SMTPPassword = "short" }},
		{"bad from address", func(p *CreateParams) { p.EmailFrom = "nope" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)
			_, err := NewEmailConfiguration(params)
			assert.Error(t, err)
		})
	}
}

func TestEmailConfiguration_MarkDefaultRecordsEvent(t *testing.T) {
	cfg, err := NewEmailConfiguration(validParams())
	require.NoError(t, err)
	cfg.PullEvents()

	cfg.MarkDefault()
	assert.True(t, cfg.IsDefault())

	events := cfg.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "email_configuration.set_default", events[0].EventName())

	// marking again is a no-op
	cfg.MarkDefault()
	assert.Empty(t, cfg.PullEvents())
}

func TestEmailConfiguration_ClearDefaultRecordsNoEvent(t *testing.T) {
	cfg, err := NewEmailConfiguration(validParams())
	require.NoError(t, err)
	cfg.MarkDefault()
	cfg.PullEvents()

	cfg.ClearDefault()
	assert.False(t, cfg.IsDefault())
	assert.Empty(t, cfg.PullEvents(), "the new default's event describes the transition")
}

func TestEmailConfiguration_UpdateRecordsChangedFields(t *testing.T) {
	cfg, err := NewEmailConfiguration(validParams())
	require.NoError(t, err)
	cfg.PullEvents()

	host := "smtp2.example.test"
	port := 465
	require.NoError(t, cfg.Update(UpdateParams{SMTPHost: &host, SMTPPort: &port}))

	events := cfg.PullEvents()
	require.Len(t, events, 1)
	updated, ok := events[0].(*EmailConfigurationUpdatedEvent)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"smtp_host", "smtp_port"}, updated.ChangedFields())
}

func TestEmailConfiguration_UpdatedEventHidesPassword(t *testing.T) {
	cfg, err := NewEmailConfiguration(validParams())
	require.NoError(t, err)
	cfg.PullEvents()

	password := "new-longer-password"
	require.NoError(t, cfg.Update(UpdateParams{SMTPPassword: &password}))

	events := cfg.PullEvents()
	require.Len(t, events, 1)
	carrier, ok := events[0].(interface{ EventPayload() map[string]interface{} })
	require.True(t, ok)
	for key, value := range carrier.EventPayload() {
		assert.NotEqual(t, password, value, "payload key %s leaks the password", key)
	}
}
