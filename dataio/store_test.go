// SPDX-License-Identifier: MIT

package dataio_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tdpad/dataio"
)

var errNoSuchKey = errors.New("fake: no such key")

// fakeObjects is an in-memory ObjectAPI.
type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: make(map[string][]byte)}
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errNoSuchKey
	}

	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data

	return &s3.PutObjectOutput{}, nil
}

func TestStore_LocalRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := dataio.NewLocalStore()
	loc := filepath.Join(t.TempDir(), "nested", "scores.txt")

	w, err := st.Create(ctx, loc)
	require.NoError(t, err)
	require.NoError(t, dataio.WriteScores(w, []float64{1, 2}))
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "1\n2", string(raw))

	r, err := st.Open(ctx, loc)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, []float64{1, 2}, parseScores(t, r))
}

func TestStore_LocalMissing(t *testing.T) {
	_, err := dataio.NewLocalStore().Open(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestStore_ObjectRoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := newFakeObjects()
	st := dataio.NewStore(fake)

	w, err := st.Create(ctx, "s3://bucket/runs/out.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("0.5\n1.5"))
	require.NoError(t, err)
	assert.Empty(t, fake.objects, "upload happens on Close")
	require.NoError(t, w.Close())
	assert.Equal(t, []byte("0.5\n1.5"), fake.objects["bucket/runs/out.txt"])

	r, err := st.Open(ctx, "s3://bucket/runs/out.txt")
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, []float64{0.5, 1.5}, parseScores(t, r))
}

func TestStore_ObjectErrors(t *testing.T) {
	ctx := context.Background()

	_, err := dataio.NewStore(newFakeObjects()).Open(ctx, "s3://bucket/missing")
	require.ErrorIs(t, err, errNoSuchKey)

	_, err = dataio.NewLocalStore().Open(ctx, "s3://bucket/key")
	require.ErrorIs(t, err, dataio.ErrNoObjectStore)

	for _, loc := range []string{"", "s3://bucket", "s3://bucket/", "s3:///key"} {
		_, err = dataio.NewStore(newFakeObjects()).Create(ctx, loc)
		require.ErrorIs(t, err, dataio.ErrBadLocation, loc)
	}
}

func TestIsRemote(t *testing.T) {
	assert.True(t, dataio.IsRemote("s3://b/k"))
	assert.False(t, dataio.IsRemote("/tmp/data.csv"))
	assert.False(t, dataio.IsRemote("data.csv"))
}
