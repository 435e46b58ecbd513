package emailsvc

import (
	"net/http"
	"net/mail"
	"strings"
	"testing"
	texttmpl "text/template"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/trackx/core"
	testutil "github.com/trezcool/trackx/tests"
)

var school = mail.Address{Name: "Alpha", Address: "alpha@test.cd"}

func TestConsoleServiceMock(t *testing.T) {
	logger := testutil.NewLoggerMock()
	svc := NewConsoleServiceMock(core.NewTestConfig(), logger)

	svc.SendMessages(
		&core.EmailMessage{To: []mail.Address{school}, Subject: "Invoice", BodyStr: "Amount due: 10"},
		&core.EmailMessage{Subject: "no recipient", BodyStr: "dropped"},
		&core.EmailMessage{To: []mail.Address{school}, Subject: "no content"},
		&core.EmailMessage{
			To:           []mail.Address{school},
			Subject:      "templated",
			Template:     texttmpl.Must(texttmpl.New("t").Parse("Hello {{.}}")),
			TemplateData: "Alpha",
		},
	)

	sent := svc.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "Amount due: 10", sent[0].TextContent)
	assert.Equal(t, "Hello Alpha", sent[1].TextContent)
	assert.Empty(t, logger.Logged("info"), "mock does not print")
}

func TestConsoleService_format(t *testing.T) {
	conf := core.NewTestConfig()
	svc := consoleService{defaultFromEmail: conf.DefaultFromEmail, subjPrefix: "[TrackX] "}

	out := svc.format(core.EmailMessage{
		To:          []mail.Address{school},
		Cc:          []mail.Address{{Address: "ops@test.cd"}},
		Subject:     "Invoice INV-1",
		TextContent: "Amount due: 10",
	})
	assert.Contains(t, out, "Subject: [TrackX] Invoice INV-1\r\n")
	assert.Contains(t, out, `To: "Alpha" <alpha@test.cd>`)
	assert.Contains(t, out, "CC: <ops@test.cd>\r\n")
	assert.NotContains(t, out, "BCC:")
	assert.True(t, strings.HasSuffix(out, "\r\n\r\nAmount due: 10\r\n"))
}

func TestSendgridService_send(t *testing.T) {
	defer func(f func(rest.Request) (*rest.Response, error)) { sendgridAPIFunc = f }(sendgridAPIFunc)

	msg := core.EmailMessage{To: []mail.Address{school}, Subject: "Invoice INV-1", TextContent: "Amount due: 10"}

	tests := []struct {
		name      string
		res       *rest.Response
		err       error
		wantError string
	}{
		{name: "accepted", res: &rest.Response{StatusCode: http.StatusAccepted}},
		{name: "rejected", res: &rest.Response{StatusCode: http.StatusBadRequest, Body: "bad key"}, wantError: "status: 400"},
		{name: "unreachable", err: errors.New("dial tcp: timeout"), wantError: "dial tcp: timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := testutil.NewLoggerMock()
			svc := NewSendgridService(core.NewTestConfig(), logger).(*sendgridService)

			var got rest.Request
			sendgridAPIFunc = func(req rest.Request) (*rest.Response, error) {
				got = req
				return tt.res, tt.err
			}
			svc.send(msg)

			assert.Equal(t, rest.Post, got.Method)
			assert.Equal(t, host+endpoint, got.BaseURL)
			assert.Contains(t, string(got.Body), `"subject":"[TrackX] Invoice INV-1"`)
			assert.Contains(t, string(got.Body), `"email":"alpha@test.cd"`)

			logged := logger.Logged("error")
			if tt.wantError == "" {
				assert.Empty(t, logged)
				return
			}
			require.Len(t, logged, 1)
			assert.Contains(t, logged[0], tt.wantError)
		})
	}
}
