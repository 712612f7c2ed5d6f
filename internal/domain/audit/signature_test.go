package audit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLog() *AuditLog {
	return &AuditLog{
		AuditID:    uuid.New(),
		EntityType: EntityLease,
		EntityID:   uuid.New().String(),
		Action:     ActionTerminate,
		Actor:      "user:alice",
		ActorRole:  "MANAGER",
		OldValues:  []byte(`{"status":"ACTIVE"}`),
		NewValues:  []byte(`{"status":"TERMINATED"}`),
		Reason:     "tenant breach",
		CreatedAt:  time.Now().UTC(),
	}
}

func TestSignAndVerify(t *testing.T) {
	key := []byte("test-signing-key")
	log := sampleLog()

	sig, err := SignAuditLog(log, key)
	require.NoError(t, err)
	require.NotEmpty(t, sig)
	log.Signature = sig

	ok, err := VerifyAuditLogSignature(log, key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyDetectsTampering(t *testing.T) {
	key := []byte("test-signing-key")
	log := sampleLog()
	sig, err := SignAuditLog(log, key)
	require.NoError(t, err)
	log.Signature = sig

	log.NewValues = []byte(`{"status":"ACTIVE"}`)
	ok, err := VerifyAuditLogSignature(log, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyWrongKey(t *testing.T) {
	log := sampleLog()
	sig, err := SignAuditLog(log, []byte("key-one"))
	require.NoError(t, err)
	log.Signature = sig

	ok, err := VerifyAuditLogSignature(log, []byte("key-two"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyMissingSignature(t *testing.T) {
	ok, err := VerifyAuditLogSignature(sampleLog(), []byte("key"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewAuditLogSerializesValues(t *testing.T) {
	entry := &AuditEntry{
		EntityType: EntitySale,
		EntityID:   "abc",
		Action:     ActionCancel,
		Actor:      "user:bob",
		OldValues:  map[string]string{"status": "COMPLETED"},
		NewValues:  map[string]string{"status": "CANCELLED"},
	}

	log, err := NewAuditLog(entry)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, log.AuditID)
	assert.JSONEq(t, `{"status":"COMPLETED"}`, string(log.OldValues))
	assert.JSONEq(t, `{"status":"CANCELLED"}`, string(log.NewValues))
	assert.False(t, log.CreatedAt.IsZero())
}
