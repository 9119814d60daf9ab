package recovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocksim/tui-go/internal/api"
	"github.com/blocksim/tui-go/internal/store"
)

type fakeClient struct {
	forgotErr error
	verifyErr error
	resetErr  error

	forgotCalls int
	lastVerify  [2]string // email, otp
	lastReset   [3]string // email, otp, password
}

func (f *fakeClient) ForgotPassword(_ context.Context, email string) (*api.Message, error) {
	f.forgotCalls++
	if f.forgotErr != nil {
		return nil, f.forgotErr
	}
	return &api.Message{Message: "OTP sent"}, nil
}

func (f *fakeClient) VerifyOTP(_ context.Context, email, otp string) (*api.Message, error) {
	f.lastVerify = [2]string{email, otp}
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &api.Message{Message: "OTP verified"}, nil
}

func (f *fakeClient) ResetPassword(_ context.Context, email, otp, newPassword string) (*api.Message, error) {
	f.lastReset = [3]string{email, otp, newPassword}
	if f.resetErr != nil {
		return nil, f.resetErr
	}
	return &api.Message{Message: "Password reset"}, nil
}

func newFlow(client *fakeClient) (*Flow, *store.Transient) {
	transient := store.NewTransient()
	return NewFlow(client, transient, nil), transient
}

func TestHappyPath(t *testing.T) {
	client := &fakeClient{}
	f, transient := newFlow(client)
	ctx := context.Background()

	require.Equal(t, Idle, f.State())

	require.NoError(t, f.RequestCode(ctx, "user@example.com"))
	assert.Equal(t, OTPRequested, f.State())
	assert.True(t, f.CanEnterVerify())
	assert.False(t, f.CanEnterReset())

	require.NoError(t, f.VerifyCode(ctx, "482913"))
	assert.Equal(t, OTPVerified, f.State())
	assert.True(t, f.CanEnterReset())
	assert.Equal(t, [2]string{"user@example.com", "482913"}, client.lastVerify)

	require.NoError(t, f.ResetPassword(ctx, "Str0ng!Pass", "Str0ng!Pass"))
	assert.Equal(t, Completed, f.State())
	assert.Equal(t, [3]string{"user@example.com", "482913", "Str0ng!Pass"}, client.lastReset)

	// Transient storage is empty after completion.
	assert.Equal(t, 0, transient.Len())
}

func TestRequestCodeFailureStaysIdle(t *testing.T) {
	client := &fakeClient{forgotErr: &api.ServerError{StatusCode: 500}}
	f, transient := newFlow(client)

	err := f.RequestCode(context.Background(), "user@example.com")
	require.Error(t, err)
	assert.Equal(t, Idle, f.State())
	assert.Equal(t, 0, transient.Len())
	assert.False(t, f.CanEnterVerify())
}

func TestRequestCodeEmptyEmail(t *testing.T) {
	client := &fakeClient{}
	f, _ := newFlow(client)

	err := f.RequestCode(context.Background(), "")
	var validationErr *api.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, client.forgotCalls)
}

func TestVerifyGuardsAgainstDirectEntry(t *testing.T) {
	f, _ := newFlow(&fakeClient{})

	// Entering verify without a prior request must redirect to the start.
	assert.False(t, f.CanEnterVerify())

	err := f.VerifyCode(context.Background(), "123456")
	var validationErr *api.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, Idle, f.State())
}

func TestVerifyIncompleteCode(t *testing.T) {
	f, _ := newFlow(&fakeClient{})
	ctx := context.Background()
	require.NoError(t, f.RequestCode(ctx, "user@example.com"))

	for _, code := range []string{"", "123", "12345", "1234567", "12a456"} {
		err := f.VerifyCode(ctx, code)
		var validationErr *api.ValidationError
		require.ErrorAs(t, err, &validationErr, "code %q", code)
		assert.Equal(t, OTPRequested, f.State())
	}
}

func TestVerifyFailureStaysRequested(t *testing.T) {
	client := &fakeClient{verifyErr: &api.ValidationError{Message: "Invalid OTP"}}
	f, _ := newFlow(client)
	ctx := context.Background()
	require.NoError(t, f.RequestCode(ctx, "user@example.com"))

	err := f.VerifyCode(ctx, "000000")
	require.Error(t, err)
	assert.Equal(t, OTPRequested, f.State())
	assert.False(t, f.CanEnterReset())
}

func TestResendKeepsState(t *testing.T) {
	client := &fakeClient{}
	f, _ := newFlow(client)
	ctx := context.Background()
	require.NoError(t, f.RequestCode(ctx, "user@example.com"))

	require.NoError(t, f.Resend(ctx))
	assert.Equal(t, OTPRequested, f.State())
	assert.Equal(t, 2, client.forgotCalls)
}

func TestResetGuardsWithoutVerifiedCode(t *testing.T) {
	f, _ := newFlow(&fakeClient{})
	ctx := context.Background()

	// Straight to reset: blocked.
	assert.False(t, f.CanEnterReset())
	err := f.ResetPassword(ctx, "Str0ng!Pass", "Str0ng!Pass")
	require.Error(t, err)

	// Requested but not verified: still blocked.
	require.NoError(t, f.RequestCode(ctx, "user@example.com"))
	assert.False(t, f.CanEnterReset())
	err = f.ResetPassword(ctx, "Str0ng!Pass", "Str0ng!Pass")
	require.Error(t, err)
	assert.Equal(t, OTPRequested, f.State())
}

func TestResetValidation(t *testing.T) {
	client := &fakeClient{}
	f, _ := newFlow(client)
	ctx := context.Background()
	require.NoError(t, f.RequestCode(ctx, "user@example.com"))
	require.NoError(t, f.VerifyCode(ctx, "482913"))

	tests := []struct {
		name     string
		password string
		confirm  string
	}{
		{"mismatch", "Str0ng!Pass", "Other!Pass"},
		{"too short", "abc12", "abc12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.ResetPassword(ctx, tt.password, tt.confirm)
			var validationErr *api.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, OTPVerified, f.State())
			// Local validation failures never reach the network.
			assert.Empty(t, client.lastReset[0])
		})
	}
}

func TestResetServerFailureKeepsContext(t *testing.T) {
	client := &fakeClient{resetErr: errors.New("boom")}
	f, transient := newFlow(client)
	ctx := context.Background()
	require.NoError(t, f.RequestCode(ctx, "user@example.com"))
	require.NoError(t, f.VerifyCode(ctx, "482913"))

	err := f.ResetPassword(ctx, "Str0ng!Pass", "Str0ng!Pass")
	require.Error(t, err)
	assert.Equal(t, OTPVerified, f.State())
	assert.Equal(t, 2, transient.Len())
}

func TestAbandon(t *testing.T) {
	f, transient := newFlow(&fakeClient{})
	ctx := context.Background()
	require.NoError(t, f.RequestCode(ctx, "user@example.com"))
	require.NoError(t, f.VerifyCode(ctx, "482913"))

	f.Abandon()
	assert.Equal(t, Idle, f.State())
	assert.Equal(t, 0, transient.Len())
	assert.False(t, f.CanEnterVerify())
	assert.False(t, f.CanEnterReset())
}
