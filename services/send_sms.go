package services

import (
	"fmt"
	"unicode/utf8"

	"github.com/rpupo63/studio-site-backend/config"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// maxSMSLength keeps a notification inside a single concatenated SMS.
const maxSMSLength = 320

// messageCreator is the part of the Twilio REST client used to send SMS.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioClient sends text messages through Twilio.
type TwilioClient struct {
	messages messageCreator
	from     string
}

// NewTwilioClient reads TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM_NUMBER from c.
func NewTwilioClient(c map[string]string) (*TwilioClient, error) {
	sid := config.GetString(c, "TWILIO_ACCOUNT_SID", "")
	if sid == "" {
		return nil, errs.NewConfigMissingError("TWILIO_ACCOUNT_SID")
	}
	token := config.GetString(c, "TWILIO_AUTH_TOKEN", "")
	if token == "" {
		return nil, errs.NewConfigMissingError("TWILIO_AUTH_TOKEN")
	}
	from := config.GetString(c, "TWILIO_FROM_NUMBER", "")
	if from == "" {
		return nil, errs.NewConfigMissingError("TWILIO_FROM_NUMBER")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})
	return &TwilioClient{messages: client.Api, from: from}, nil
}

// SendSMS sends body to a single phone number, truncating overly long text.
func (c *TwilioClient) SendSMS(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(c.from)
	params.SetBody(truncate(body, maxSMSLength))

	resp, err := c.messages.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS to %s: %w", to, err)
	}
	if resp != nil && resp.Sid != nil {
		log.Info().Str("messageSid", *resp.Sid).Msg("Successfully sent SMS via Twilio")
	}
	return nil
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
