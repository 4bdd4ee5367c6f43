package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/tribuneros/tribuneros-api/internal/usecase"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: bad date", usecase.ErrInvalidInput), wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
		{name: "not found", err: usecase.ErrNotFound, wantStatus: http.StatusNotFound, wantReason: "notFound"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantReason: "unauthorized"},
		{name: "sync in progress", err: usecase.ErrSyncInProgress, wantStatus: http.StatusConflict, wantReason: "syncInProgress"},
		{name: "scheduler already started", err: usecase.ErrSchedulerAlreadyStarted, wantStatus: http.StatusConflict, wantReason: "syncInProgress"},
		{name: "dependency unavailable", err: usecase.ErrDependencyUnavailable, wantStatus: http.StatusServiceUnavailable, wantReason: "dependencyUnavailable"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantReason: "internalError"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapError(context.Background(), tc.err)
			require.Equal(t, tc.wantStatus, mapped.HTTPStatus)
			require.Equal(t, tc.wantReason, mapped.Reason)
		})
	}
}

func TestWriteErrorEnvelopeShape(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	writeError(context.Background(), recorder, fmt.Errorf("%w: match 9", usecase.ErrNotFound))

	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var envelope googleResponseEnvelope
	require.NoError(t, sonic.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Equal(t, googleAPIVersion, envelope.APIVersion)
	require.NotNil(t, envelope.Error)
	require.Equal(t, "NOT_FOUND", envelope.Error.Status)
	require.Len(t, envelope.Error.Errors, 1)
	require.Equal(t, errorDomain, envelope.Error.Errors[0].Domain)
}

func TestWriteSuccessEnvelopeShape(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	writeSuccess(context.Background(), recorder, http.StatusOK, map[string]string{"status": "ok"})

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope googleResponseEnvelope
	require.NoError(t, sonic.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Equal(t, googleAPIVersion, envelope.APIVersion)
	require.Nil(t, envelope.Error)
	require.Equal(t, map[string]any{"status": "ok"}, envelope.Data)
}
