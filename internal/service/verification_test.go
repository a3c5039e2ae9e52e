package service

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camrado/pritok/internal/apperror"
)

func TestRequestCodeRollsFreshCode(t *testing.T) {
	ts := newTestServices(t)

	user, _, err := ts.auth.SignUp("Alice", "a@x.com", "secret-enough")
	require.NoError(t, err)
	require.NotNil(t, user.VerificationCode)
	first := *user.VerificationCode

	n, err := strconv.Atoi(first)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 100000)
	assert.LessOrEqual(t, n, 999999)

	// The code can be re-rolled while still pending
	require.NoError(t, ts.verification.RequestCode(user))
	require.NotNil(t, user.VerificationCode)

	stored, err := ts.userRepo.ByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.VerificationCode)
	assert.Equal(t, *user.VerificationCode, *stored.VerificationCode)
}

func TestRequestCodeAfterVerification(t *testing.T) {
	ts := newTestServices(t)

	user := signUpVerified(t, ts, "a@x.com")

	err := ts.verification.RequestCode(user)
	requireCode(t, err, apperror.CodeAlreadyVerified)
}

func TestConfirmCode(t *testing.T) {
	ts := newTestServices(t)

	user, _, err := ts.auth.SignUp("Alice", "a@x.com", "secret-enough")
	require.NoError(t, err)
	code := *user.VerificationCode

	err = ts.verification.ConfirmCode(user, code)
	require.NoError(t, err)

	stored, err := ts.userRepo.ByID(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)
	assert.Nil(t, stored.VerificationCode, "code is cleared once used")

	err = ts.verification.ConfirmCode(stored, code)
	requireCode(t, err, apperror.CodeAlreadyVerified)
}

func TestConfirmCodeMismatchLeavesStateUntouched(t *testing.T) {
	ts := newTestServices(t)

	user, _, err := ts.auth.SignUp("Alice", "a@x.com", "secret-enough")
	require.NoError(t, err)
	code := *user.VerificationCode

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	err = ts.verification.ConfirmCode(user, wrong)
	requireCode(t, err, apperror.CodeInvalidCode)

	stored, err := ts.userRepo.ByID(user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsVerified)
	require.NotNil(t, stored.VerificationCode)
	assert.Equal(t, code, *stored.VerificationCode, "stored code is unchanged after a mismatch")

	err = ts.verification.ConfirmCode(user, "")
	requireCode(t, err, apperror.CodeInvalidCode)
}
