package auth

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jfmyers9/srfsongs/internal/console"
	"github.com/jfmyers9/srfsongs/internal/credentials"
	"github.com/jfmyers9/srfsongs/internal/password"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testEmail    = "kamal@example.com"
	testPassword = "Kamal@1234"
	testQuestion = "What is your pet's name?"
	testAnswer   = "Fluffy"
)

func init() {
	password.Cost = bcrypt.MinCost
}

func newTestRecord(t *testing.T) credentials.Record {
	t.Helper()
	hash, err := password.Hash(testPassword)
	require.NoError(t, err)
	return credentials.Record{
		Email:            testEmail,
		HashedPassword:   hash,
		SecurityQuestion: testQuestion,
		SecurityAnswer:   testAnswer,
	}
}

func newTestFlow(store credentials.Store, answers ...string) (*Flow, *console.Script, *bytes.Buffer) {
	var out bytes.Buffer
	script := console.NewScript(&out, answers...)
	flow := New(store, script, &out, Config{}, zerolog.Nop())
	return flow, script, &out
}

func TestLogin_SuccessFirstAttempt(t *testing.T) {
	store := credentials.NewMemoryStore(newTestRecord(t))
	flow, _, out := newTestFlow(store, testEmail, testPassword)

	result, err := flow.Login(context.Background())
	require.NoError(t, err)

	assert.Equal(t, testEmail, result.Email)
	assert.Equal(t, 0, result.FailedAttempts)
	assert.Equal(t, StateAuthenticated, flow.State())
	assert.Contains(t, out.String(), "Login successful!")
}

func TestLogin_SuccessAfterFailures(t *testing.T) {
	store := credentials.NewMemoryStore(newTestRecord(t))
	flow, _, _ := newTestFlow(store,
		testEmail, "Wrong@1234",
		testEmail, "Wrong@5678",
		testEmail, testPassword,
	)

	result, err := flow.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.FailedAttempts)
}

func TestLogin_LockoutAfterFiveFailures(t *testing.T) {
	store := credentials.NewMemoryStore(newTestRecord(t))

	var answers []string
	for i := 0; i < DefaultMaxAttempts; i++ {
		answers = append(answers, testEmail, "Wrong@1234")
	}
	// Correct credentials after the lockout must never be read
	answers = append(answers, testEmail, testPassword)

	flow, script, out := newTestFlow(store, answers...)

	result, err := flow.Login(context.Background())
	assert.ErrorIs(t, err, ErrLockedOut)
	assert.Equal(t, DefaultMaxAttempts, result.FailedAttempts)
	assert.True(t, flow.LockedOut())
	assert.Equal(t, 2, script.Remaining())
	assert.Equal(t, DefaultMaxAttempts, bytes.Count(out.Bytes(), []byte("Invalid email or password.")))
	assert.Contains(t, out.String(), "You have been locked out")

	// Locked flows refuse without prompting
	_, err = flow.Login(context.Background())
	assert.ErrorIs(t, err, ErrLockedOut)
	assert.Equal(t, 2, script.Remaining())
}

func TestLogin_CustomMaxAttempts(t *testing.T) {
	store := credentials.NewMemoryStore(newTestRecord(t))
	var out bytes.Buffer
	script := console.NewScript(&out, testEmail, "Wrong@1234", testEmail, "Wrong@1234")
	flow := New(store, script, &out, Config{MaxAttempts: 2}, zerolog.Nop())

	result, err := flow.Login(context.Background())
	assert.ErrorIs(t, err, ErrLockedOut)
	assert.Equal(t, 2, result.FailedAttempts)
}

func TestLogin_UnknownEmailConsumesAttempt(t *testing.T) {
	store := credentials.NewMemoryStore(newTestRecord(t))
	flow, _, _ := newTestFlow(store,
		"nobody@example.com", testPassword,
		testEmail, testPassword,
	)

	result, err := flow.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.FailedAttempts)
}

func TestLogin_MalformedInputDoesNotConsumeAttempt(t *testing.T) {
	store := credentials.NewMemoryStore(newTestRecord(t))

	var answers []string
	// Far more malformed inputs than the attempt limit
	for i := 0; i < DefaultMaxAttempts+2; i++ {
		answers = append(answers, "not-an-email")
		answers = append(answers, testEmail, "weak")
	}
	answers = append(answers, testEmail, testPassword)

	flow, _, out := newTestFlow(store, answers...)

	result, err := flow.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.FailedAttempts)
	assert.Contains(t, out.String(), "Invalid email format.")
	assert.Contains(t, out.String(), "Invalid password format.")
}

func TestLogin_PromptError(t *testing.T) {
	store := credentials.NewMemoryStore(newTestRecord(t))
	flow, _, _ := newTestFlow(store)

	_, err := flow.Login(context.Background())
	assert.Error(t, err)
	assert.False(t, Reported(err))
}

func TestLogin_StoreError(t *testing.T) {
	store := credentials.NewMemoryStore()
	store.LoadErr = os.ErrNotExist
	flow, _, _ := newTestFlow(store, testEmail, testPassword)

	_, err := flow.Login(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, Reported(err))
}

func TestForgotPassword_ResetsPassword(t *testing.T) {
	store := credentials.NewMemoryStore(newTestRecord(t))
	before, err := store.Load(context.Background())
	require.NoError(t, err)

	flow, _, out := newTestFlow(store, testEmail, testAnswer, "NewPass#99")

	require.NoError(t, flow.ForgotPassword(context.Background()))

	after, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.Saves)
	assert.NotEqual(t, before[0].HashedPassword, after[0].HashedPassword)
	assert.True(t, password.Verify("NewPass#99", after[0].HashedPassword))
	assert.False(t, password.Verify(testPassword, after[0].HashedPassword))

	assert.Contains(t, out.String(), "Security Question: "+testQuestion)
	assert.Contains(t, out.String(), "Password reset successful!")
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	store := credentials.NewMemoryStore(newTestRecord(t))
	flow, script, out := newTestFlow(store, "nobody@example.com", "unused")

	err := flow.ForgotPassword(context.Background())
	assert.ErrorIs(t, err, ErrEmailNotFound)
	assert.True(t, Reported(err))
	assert.Equal(t, 1, script.Remaining())
	assert.Contains(t, out.String(), "Email not found.")
}

func TestReset_WrongAnswer(t *testing.T) {
	store := credentials.NewMemoryStore(newTestRecord(t))
	flow, script, out := newTestFlow(store, "NewPass#99")

	err := flow.Reset(context.Background(), testEmail, "fluffy")
	assert.ErrorIs(t, err, ErrResetRejected)
	assert.Equal(t, 0, store.Saves)
	assert.Equal(t, 1, script.Remaining(), "no new password prompt on a wrong answer")
	assert.Contains(t, out.String(), "Invalid email or security answer.")
}

func TestReset_InvalidNewPassword(t *testing.T) {
	store := credentials.NewMemoryStore(newTestRecord(t))
	flow, script, out := newTestFlow(store, "weak", "NewPass#99")

	err := flow.Reset(context.Background(), testEmail, testAnswer)
	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.Equal(t, 0, store.Saves)
	assert.Equal(t, 1, script.Remaining(), "an invalid new password is not re-prompted")
	assert.Contains(t, out.String(), "Invalid password format. Try again.")
}

func TestReset_OverlongNewPassword(t *testing.T) {
	store := credentials.NewMemoryStore(newTestRecord(t))
	overlong := "NewPass#99" + strings.Repeat("x", password.MaxBytes)
	flow, script, out := newTestFlow(store, overlong)

	err := flow.Reset(context.Background(), testEmail, testAnswer)
	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.True(t, Reported(err))
	assert.Equal(t, 0, store.Saves)
	assert.Equal(t, 0, script.Remaining())
	assert.Contains(t, out.String(), "Invalid password format. Try again.")
}

func TestReset_SaveError(t *testing.T) {
	store := credentials.NewMemoryStore(newTestRecord(t))
	store.SaveErr = errors.New("read-only file system")
	flow, _, _ := newTestFlow(store, "NewPass#99")

	err := flow.Reset(context.Background(), testEmail, testAnswer)
	assert.EqualError(t, err, "read-only file system")
	assert.False(t, Reported(err))
}

func TestReset_WrongAnswerLeavesFileUntouched(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.csv")
	store := credentials.NewCSVStore(path)
	require.NoError(t, store.Save(ctx, []credentials.Record{newTestRecord(t)}))

	before, err := os.ReadFile(path)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)

	flow, _, _ := newTestFlow(store, "NewPass#99")
	assert.ErrorIs(t, flow.Reset(ctx, testEmail, "wrong"), ErrResetRejected)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	infoAfter, err := os.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, before, after)
	assert.Equal(t, info.ModTime(), infoAfter.ModTime())
}

func TestReset_KeepsOtherRecords(t *testing.T) {
	other := credentials.Record{
		Email:            "other@example.com",
		HashedPassword:   "other-hash",
		SecurityQuestion: "Q?",
		SecurityAnswer:   testAnswer,
	}
	store := credentials.NewMemoryStore(other, newTestRecord(t))
	flow, _, _ := newTestFlow(store, "NewPass#99")

	require.NoError(t, flow.Reset(context.Background(), testEmail, testAnswer))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, other, records[0])
	assert.Equal(t, testEmail, records[1].Email)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting_email", StateAwaitingEmail.String())
	assert.Equal(t, "awaiting_password", StateAwaitingPassword.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "rejected", StateRejected.String())
	assert.Equal(t, "locked_out", StateLockedOut.String())
	assert.Equal(t, "unknown", State(42).String())
}
