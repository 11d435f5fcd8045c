package core

import (
	"context"
	"testing"
	"time"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
	"github.com/stretchr/testify/assert"
)

// fakeWeb maps "METHOD url" keys to canned responses and records every call.
type fakeWeb struct {
	responses map[string]*contract.WebResponse
	errs      map[string]error
	calls     []string
}

func newFakeWeb() *fakeWeb {
	return &fakeWeb{
		responses: make(map[string]*contract.WebResponse),
		errs:      make(map[string]error),
	}
}

func (f *fakeWeb) Do(_ context.Context, method, url string, _ map[string]string, _ time.Duration) (*contract.WebResponse, error) {
	key := method + " " + url
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	if resp, ok := f.responses[key]; ok {
		return resp, nil
	}
	return &contract.WebResponse{StatusCode: 500, Body: []byte("unmapped route")}, nil
}

func (f *fakeWeb) stub(method, url string, status int, body string) {
	f.responses[method+" "+url] = &contract.WebResponse{StatusCode: status, Body: []byte(body)}
}

func (f *fakeWeb) called(method, url string) bool {
	for _, c := range f.calls {
		if c == method+" "+url {
			return true
		}
	}
	return false
}

// fakeBGG returns canned user and collection payloads.
type fakeBGG struct {
	user    *schema.UserPayload
	userRaw []byte
	userErr error

	collection *schema.CollectionPayload
	collRaw    []byte
	collErr    error
}

func (f *fakeBGG) FetchUser(context.Context, string) (*schema.UserPayload, []byte, error) {
	return f.user, f.userRaw, f.userErr
}

func (f *fakeBGG) FetchCollection(context.Context, string) (*schema.CollectionPayload, []byte, error) {
	return f.collection, f.collRaw, f.collErr
}

// fakeProber fails imports listed in missing and records probe order.
type fakeProber struct {
	missing map[string]bool
	probed  []string
}

func (f *fakeProber) Probe(_ context.Context, importName string) error {
	f.probed = append(f.probed, importName)
	if f.missing[importName] {
		return assert.AnError
	}
	return nil
}

func TestGithubHeaders(t *testing.T) {
	anon := githubHeaders("")
	assert.Equal(t, contract.AcceptGitHubJSON, anon["Accept"])
	assert.NotContains(t, anon, "Authorization")

	authed := githubHeaders("tok123")
	assert.Equal(t, "Bearer tok123", authed["Authorization"])
}

func TestDecodeGitHubMessage(t *testing.T) {
	assert.Equal(t, "API rate limit exceeded", decodeGitHubMessage([]byte(`{"message":"API rate limit exceeded"}`)))
	assert.Empty(t, decodeGitHubMessage([]byte("not json")))
	assert.Empty(t, decodeGitHubMessage([]byte(`{"other":"field"}`)))
}
