package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	date := time.Date(2024, 3, 9, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(date, 4211)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, date, decodedDate)
	assert.Equal(t, int64(4211), decodedID)

	// Non-UTC input is normalised so the cursor compares correctly in SQL
	local := time.Date(2024, 3, 9, 10, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	decodedDate, _, err = DecodeToken(EncodeToken(local, 1))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedDate))
	assert.Equal(t, time.UTC, decodedDate.Location())
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.StdEncoding.EncodeToString([]byte("2024-03-09T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.StdEncoding.EncodeToString([]byte("notadate|12"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")

	badID := base64.StdEncoding.EncodeToString([]byte("2024-03-09T00:00:00Z|twelve"))
	_, _, err = DecodeToken(badID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "id parse")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-5))
	assert.Equal(t, 35, ClampLimit(35))
	assert.Equal(t, MaxLimit, ClampLimit(1000))
}
