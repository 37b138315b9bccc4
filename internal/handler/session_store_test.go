package handler

import (
	"testing"
	"time"

	"tire-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreCreateAndGet(t *testing.T) {
	st := NewSessionStore(time.Second, time.Minute)
	defer st.Stop()

	token, session := st.Create()
	require.NotEmpty(t, token)
	require.NotNil(t, session)

	got, ok := st.Get(token)
	assert.True(t, ok)
	assert.Same(t, session, got)

	_, ok = st.Get("unknown")
	assert.False(t, ok)
}

func TestSessionStoreDeleteClosesSession(t *testing.T) {
	st := NewSessionStore(time.Second, time.Minute)
	defer st.Stop()

	token, session := st.Create()
	session.Open(model.Product{ID: 1, Name: "Road King", Brand: "Acme",
		Width: "205", Profile: "55", Diameter: "R16", Stock: 3}, nil)

	st.Delete(token)

	_, ok := st.Get(token)
	assert.False(t, ok)
	assert.False(t, session.State().Open)
}

func TestSessionStoreSweepDropsIdleSessions(t *testing.T) {
	st := NewSessionStore(time.Second, 20*time.Millisecond)
	defer st.Stop()

	token, _ := st.Create()

	assert.Eventually(t, func() bool {
		_, ok := st.Get(token)
		return !ok
	}, time.Second, 10*time.Millisecond, "idle session should be swept")
}
