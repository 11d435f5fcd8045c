package core

import (
	"context"
	"testing"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		Title:        "My Games",
		BGGUsername:  "alice",
		GithubRepo:   "alice/mygames",
		ManifestPath: writeManifest(t, "requests\n"),
	}
}

func healthyWeb() *fakeWeb {
	web := newFakeWeb()
	web.stub("GET", usersURL, 200, `{"login":"alice"}`)
	web.stub("GET", reposURL, 200, `{"full_name":"alice/mygames"}`)
	web.stub("HEAD", proxyURL, 200, "")
	return web
}

func healthyBGG() *fakeBGG {
	return &fakeBGG{
		user: bggUser("42"),
		collection: &schema.CollectionPayload{
			TotalItems: 1,
			Items:      []schema.CollectionItem{{ObjectID: 822, Name: "Carcassonne"}},
		},
	}
}

func checkNames(report *schema.Report) []string {
	names := make([]string, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		names = append(names, o.CheckName)
	}
	return names
}

func TestRunSetupValidationAllPass(t *testing.T) {
	engine := NewEngine(healthyWeb(), healthyBGG(), &fakeProber{})

	report := engine.RunSetupValidation(context.Background(), validationConfig(t))
	assert.True(t, report.OverallPass)
	assert.Equal(t, []string{
		schema.CheckIdentifier,
		schema.CheckAccount,
		schema.CheckRepository,
		schema.CheckProxy,
		schema.CheckDependencies,
		schema.CheckCollection,
	}, checkNames(report))
}

func TestRunSetupValidationBadIdentifierStillRunsAll(t *testing.T) {
	web := healthyWeb()
	engine := NewEngine(web, healthyBGG(), &fakeProber{})
	cfg := validationConfig(t)
	cfg.GithubRepo = "not-a-repo"

	report := engine.RunSetupValidation(context.Background(), cfg)
	assert.False(t, report.OverallPass)

	// GitHub API stages are skipped, but the later checks still run.
	names := checkNames(report)
	assert.Equal(t, []string{
		schema.CheckIdentifier,
		schema.CheckProxy,
		schema.CheckDependencies,
		schema.CheckCollection,
	}, names)
	assert.False(t, web.called("GET", contract.GitHubAPIBase+"/users/not-a-repo"))
}

func TestRunSetupValidationRejectedRepoNeverHitsProxy(t *testing.T) {
	web := healthyWeb()
	engine := NewEngine(web, healthyBGG(), &fakeProber{})
	cfg := validationConfig(t)
	cfg.GithubRepo = "alice/re..po"

	report := engine.RunSetupValidation(context.Background(), cfg)
	assert.False(t, report.OverallPass)

	// The proxy check fails locally; the traversal value never reaches
	// the wire.
	assert.False(t, web.called("HEAD", contract.ProxyBase+"/alice/re..po"))
	for _, o := range report.Outcomes {
		if o.CheckName == schema.CheckProxy {
			assert.Equal(t, schema.SeverityFail, o.Severity)
			assert.Contains(t, o.Message, "alice/re..po")
		}
	}
}

func TestRunSetupValidationAccountMissingSkipsRepository(t *testing.T) {
	web := healthyWeb()
	web.stub("GET", usersURL, 404, `{"message":"Not Found"}`)
	engine := NewEngine(web, healthyBGG(), &fakeProber{})

	report := engine.RunSetupValidation(context.Background(), validationConfig(t))
	assert.False(t, report.OverallPass)

	names := checkNames(report)
	assert.NotContains(t, names, schema.CheckRepository)
	assert.Contains(t, names, schema.CheckProxy)
	assert.Contains(t, names, schema.CheckCollection)
	assert.False(t, web.called("GET", reposURL))
}

func TestRunSetupValidationWarnKeepsOverallPass(t *testing.T) {
	web := healthyWeb()
	web.stub("GET", usersURL, 403, `{"message":"API rate limit exceeded"}`)
	engine := NewEngine(web, healthyBGG(), &fakeProber{})

	report := engine.RunSetupValidation(context.Background(), validationConfig(t))
	require.True(t, report.OverallPass)

	// The rate limit warning is surfaced but the repository stage still ran.
	assert.Contains(t, checkNames(report), schema.CheckRepository)
}

func TestRunSetupValidationFailureNeverShortCircuits(t *testing.T) {
	web := healthyWeb()
	web.stub("HEAD", proxyURL, 404, "")
	bgg := healthyBGG()
	engine := NewEngine(web, bgg, &fakeProber{missing: map[string]bool{"requests": true}})

	report := engine.RunSetupValidation(context.Background(), validationConfig(t))
	assert.False(t, report.OverallPass)
	assert.Len(t, report.Outcomes, 6)

	// Both the proxy and the dependency failures are present.
	failed := 0
	for _, o := range report.Outcomes {
		if o.Severity == schema.SeverityFail {
			failed++
		}
	}
	assert.Equal(t, 2, failed)
}
