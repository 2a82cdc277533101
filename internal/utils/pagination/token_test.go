package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/utils/pagination"
)

func TestTokenRoundTrip(t *testing.T) {
	shiftDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 6, 1, 14, 30, 15, 123456789, time.UTC)

	token := pagination.EncodeToken(shiftDate, createdAt)
	decodedDate, decodedCreated, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, shiftDate.Equal(decodedDate))
	assert.True(t, createdAt.Equal(decodedCreated))
}

func TestDecodeTokenInvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not base64!!!")
	assert.Error(t, err)
}

func TestDecodeTokenMissingSeparator(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("2025-06-10T00:00:00Z"))
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeTokenBadTimestamps(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("yesterday|tomorrow"))
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}
