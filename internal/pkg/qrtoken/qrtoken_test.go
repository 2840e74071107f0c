package qrtoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret     = "test-qr-signing-secret"
	testBusinessID = "biz-001"
)

func testCodec() *Codec {
	return New(testSecret, 30*time.Second)
}

func TestIssueAndValidate(t *testing.T) {
	codec := testCodec()
	issuedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	token, err := codec.Issue(testBusinessID, issuedAt)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, codec.Validate(token, testBusinessID, issuedAt))
	assert.NoError(t, codec.Validate(token, testBusinessID, issuedAt.Add(29*time.Second)))
}

func TestValidateExpired(t *testing.T) {
	codec := testCodec()
	issuedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	token, err := codec.Issue(testBusinessID, issuedAt)
	require.NoError(t, err)

	err = codec.Validate(token, testBusinessID, issuedAt.Add(31*time.Second))
	require.Error(t, err)

	var tokenErr *InvalidTokenError
	require.ErrorAs(t, err, &tokenErr)
	assert.Equal(t, ReasonExpired, tokenErr.Reason)
}

func TestValidateWrongBusiness(t *testing.T) {
	codec := testCodec()
	issuedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	token, err := codec.Issue(testBusinessID, issuedAt)
	require.NoError(t, err)

	err = codec.Validate(token, "biz-other", issuedAt.Add(5*time.Second))
	require.Error(t, err)

	var tokenErr *InvalidTokenError
	require.ErrorAs(t, err, &tokenErr)
	assert.Equal(t, ReasonWrongBusiness, tokenErr.Reason)
}

func TestValidateGarbage(t *testing.T) {
	codec := testCodec()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	for _, raw := range []string{"", "not-a-token", "aaaa.bbbb.cccc"} {
		err := codec.Validate(raw, testBusinessID, now)
		require.Error(t, err)

		var tokenErr *InvalidTokenError
		require.ErrorAs(t, err, &tokenErr)
		assert.Equal(t, ReasonInvalidFormat, tokenErr.Reason)
	}
}

func TestValidateWrongKey(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	token, err := New("other-secret", 30*time.Second).Issue(testBusinessID, issuedAt)
	require.NoError(t, err)

	err = testCodec().Validate(token, testBusinessID, issuedAt)
	require.Error(t, err)

	var tokenErr *InvalidTokenError
	require.ErrorAs(t, err, &tokenErr)
	assert.Equal(t, ReasonInvalidFormat, tokenErr.Reason)
}

func TestValidateTampered(t *testing.T) {
	codec := testCodec()
	issuedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	token, err := codec.Issue(testBusinessID, issuedAt)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	err = codec.Validate(tampered, testBusinessID, issuedAt)
	require.Error(t, err)

	var tokenErr *InvalidTokenError
	require.ErrorAs(t, err, &tokenErr)
	assert.Equal(t, ReasonInvalidFormat, tokenErr.Reason)
}

func TestTTL(t *testing.T) {
	assert.Equal(t, 30*time.Second, testCodec().TTL())
}
