package directory

//go:generate go run go.uber.org/mock/mockgen -source=./directory.go -destination=./mocks/directory_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"pomade/config"
	"pomade/infras/otel"
	"pomade/shared/constant"
	"pomade/shared/failure"
)

const (
	otelScopeName = constant.OtelExternalScopeName

	statusSuccess = "success"

	defaultTimeoutSeconds = 5
)

// Profile is the safe projection the directory exposes; credentials are
// never part of the payload.
type Profile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt"`
}

type envelope struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Data    Profile `json:"data"`
}

// Directory looks up live user contact data by email.
type Directory interface {
	LookupByEmail(ctx context.Context, email string) (Profile, error)
}

type directoryImpl struct {
	baseURL string
	client  *http.Client
	otel    otel.Otel
}

func New(config *config.Config, ot otel.Otel) Directory {
	timeout := config.External.Directory.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds
	}

	return &directoryImpl{
		baseURL: strings.TrimSuffix(config.External.Directory.BaseURL, "/"),
		client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
		otel:    ot,
	}
}

func (d *directoryImpl) LookupByEmail(ctx context.Context, email string) (profile Profile, err error) {
	ctx, scope := d.otel.NewScope(ctx, otelScopeName, otelScopeName+".directory.LookupByEmail")
	defer scope.End()
	defer scope.TraceIfError(err)

	endpoint := fmt.Sprintf("%s/users/by-email/%s", d.baseURL, url.PathEscape(email))
	scope.SetAttribute("directory.endpoint", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return profile, fmt.Errorf("failed to build directory request: %w", err)
	}

	res, err := d.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("directory lookup failed")

		return profile, fmt.Errorf("failed to call directory: %w", err)
	}

	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close directory response body")
		}
	}()

	if res.StatusCode == http.StatusNotFound {
		return profile, failure.NotFound("user not found") //nolint:wrapcheck
	}

	if res.StatusCode != http.StatusOK {
		return profile, fmt.Errorf("directory returned status %d", res.StatusCode)
	}

	var body envelope
	if err = json.NewDecoder(res.Body).Decode(&body); err != nil {
		return profile, fmt.Errorf("failed to decode directory response: %w", err)
	}

	if body.Status != statusSuccess {
		return profile, fmt.Errorf("directory returned status %q: %s", body.Status, body.Message)
	}

	return body.Data, nil
}
