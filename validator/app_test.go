package validator_test

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/jonanatree/cardcheck/internal/middleware"
	"github.com/jonanatree/cardcheck/validator"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/exp/slog"
)

func TestApp_StartShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := validator.DefaultConfig()
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.ExpiryTZ = "Not/AZone"

	var logs bytes.Buffer
	app := validator.NewApp(slog.New(slog.NewTextHandler(&logs, nil)), cfg)
	require.NoError(t, app.Start())
	require.NotEmpty(t, app.Addr)

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	defer client.CloseIdleConnections()

	for _, path := range []string{"/-/live", "/-/ready"} {
		resp, err := client.Get("http://" + app.Addr + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
	}

	resp, err := client.Post("http://"+app.Addr+"/cards/validate", "application/json", bytes.NewBufferString(`{"number":"378282246310005"}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `"brand":"AMEX"`)

	app.Shutdown()

	require.Contains(t, logs.String(), "invalid ExpiryTZ")
	require.Contains(t, logs.String(), "app stopped")
	require.NotContains(t, logs.String(), "378282246310005")
}

func TestApp_StartFailsOnBadAddr(t *testing.T) {
	cfg := validator.DefaultConfig()
	cfg.HTTPAddr = "256.0.0.1:http-not-a-port"

	app := validator.NewApp(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
	require.Error(t, app.Start())
}
