package bitbucket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
	"github.com/taskpull/taskpull-cli/internal/core/ports/driven"
)

// newTestConnector points a connector at an httptest server.
func newTestConnector(t *testing.T, cfg *Config, predicate driven.IssuePredicate, handler http.Handler) *Connector {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	connector := New("src-1", cfg, nil, predicate)
	connector.SetClient(NewClientWithBaseAPI(server.URL, nil))
	return connector
}

// drain collects everything a FullSync run produces.
func drain(t *testing.T, connector *Connector) ([]domain.TaskRecord, error) {
	t.Helper()
	recordsCh, errsCh := connector.FullSync(context.Background())

	var records []domain.TaskRecord
	for record := range recordsCh {
		records = append(records, record)
	}
	for err := range errsCh {
		if err != nil {
			return records, err
		}
	}
	return records, nil
}

// trackerFixture serves a user with two repositories: "a" with the issue
// tracker enabled and "b" without. Repo "a" carries the given issue
// listing; every comment thread is empty.
func trackerFixture(issuesJSON string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/foobar/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"repositories":[
			{"slug":"a","has_issues":true},
			{"slug":"b","has_issues":false}
		]}`))
	})
	mux.HandleFunc("/repositories/foobar/a/issues/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(issuesJSON))
	})
	mux.HandleFunc("/repositories/foobar/a/issues/1/comments", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	})
	return mux
}

const oneOpenIssue = `{"issues":[{
	"local_id": 1,
	"title": "Crash on startup",
	"status": "open",
	"priority": "blocker",
	"resource_uri": "/1.0/repositories/foobar/a/issues/1",
	"responsible": {"username": "dev1"}
}]}`

func TestFullSync(t *testing.T) {
	t.Run("emits one record per open issue in tracked repos", func(t *testing.T) {
		connector := newTestConnector(t, &Config{Username: "foobar"}, nil, trackerFixture(oneOpenIssue))

		records, err := drain(t, connector)
		require.NoError(t, err)
		require.Len(t, records, 1)

		record := records[0]
		assert.Equal(t, "src-1", record.SourceID)
		assert.Equal(t, "a", record.Project)
		assert.Equal(t, domain.PriorityHigh, record.Priority)
		assert.Equal(t, 1, record.ForeignID)
		assert.Equal(t, "Crash on startup", record.Title)
		assert.Equal(t, "https://bitbucket.org/foobar/a/issue/1", record.URL)
		assert.Equal(t, record.URL, record.Key)
		assert.Equal(t, "dev1", record.Owner)
		assert.Empty(t, record.Annotations)
	})

	t.Run("excluded repo yields nothing", func(t *testing.T) {
		cfg := &Config{Username: "foobar", ExcludeRepos: []string{"a"}}
		connector := newTestConnector(t, cfg, nil, trackerFixture(oneOpenIssue))

		records, err := drain(t, connector)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("closed statuses are dropped", func(t *testing.T) {
		listing := `{"issues":[
			{"local_id": 1, "title": "a", "status": "resolved", "priority": "major", "resource_uri": "/1.0/repositories/foobar/a/issues/1"},
			{"local_id": 2, "title": "b", "status": "duplicate", "priority": "major", "resource_uri": "/1.0/repositories/foobar/a/issues/2"},
			{"local_id": 3, "title": "c", "status": "wontfix", "priority": "major", "resource_uri": "/1.0/repositories/foobar/a/issues/3"},
			{"local_id": 4, "title": "d", "status": "invalid", "priority": "major", "resource_uri": "/1.0/repositories/foobar/a/issues/4"}
		]}`
		connector := newTestConnector(t, &Config{Username: "foobar"}, nil, trackerFixture(listing))

		records, err := drain(t, connector)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("server failure aborts with no records", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/users/foobar/", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"repositories":[{"slug":"a","has_issues":true}]}`))
		})
		mux.HandleFunc("/repositories/foobar/a/issues/", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		connector := newTestConnector(t, &Config{Username: "foobar"}, nil, mux)

		records, err := drain(t, connector)
		require.Error(t, err)
		assert.Empty(t, records)

		var apiErr *APIError
		assert.ErrorAs(t, err, &apiErr)
	})

	t.Run("predicate filters before comment fetch", func(t *testing.T) {
		commentsFetched := false
		mux := http.NewServeMux()
		mux.HandleFunc("/users/foobar/", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"repositories":[{"slug":"a","has_issues":true}]}`))
		})
		mux.HandleFunc("/repositories/foobar/a/issues/", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(oneOpenIssue))
		})
		mux.HandleFunc("/repositories/foobar/a/issues/1/comments", func(w http.ResponseWriter, _ *http.Request) {
			commentsFetched = true
			w.Write([]byte(`[]`))
		})

		rejectAll := func(driven.IssueCandidate) bool { return false }
		connector := newTestConnector(t, &Config{Username: "foobar"}, rejectAll, mux)

		records, err := drain(t, connector)
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.False(t, commentsFetched)
	})

	t.Run("comments become ordered annotations", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/users/foobar/", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"repositories":[{"slug":"a","has_issues":true}]}`))
		})
		mux.HandleFunc("/repositories/foobar/a/issues/", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(oneOpenIssue))
		})
		mux.HandleFunc("/repositories/foobar/a/issues/1/comments", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`[
				{"author_info": {"username": "alice"}, "content": "looking into it"},
				{"author_info": {"username": "bob"}, "content": "same here"}
			]`))
		})
		connector := newTestConnector(t, &Config{Username: "foobar"}, nil, mux)

		records, err := drain(t, connector)
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Len(t, records[0].Annotations, 2)
		assert.Equal(t, "@alice - looking into it - https://bitbucket.org/foobar/a/issue/1", records[0].Annotations[0])
		assert.Equal(t, "@bob - same here - https://bitbucket.org/foobar/a/issue/1", records[0].Annotations[1])
	})

	t.Run("closed connector refuses to sync", func(t *testing.T) {
		connector := newTestConnector(t, &Config{Username: "foobar"}, nil, trackerFixture(oneOpenIssue))
		require.NoError(t, connector.Close())

		records, err := drain(t, connector)
		assert.ErrorIs(t, err, domain.ErrConnectorClosed)
		assert.Empty(t, records)
	})
}

func TestValidate(t *testing.T) {
	t.Run("reachable profile passes", func(t *testing.T) {
		connector := newTestConnector(t, &Config{Username: "foobar"}, nil, trackerFixture(oneOpenIssue))
		assert.NoError(t, connector.Validate(context.Background()))
	})

	t.Run("401 maps to auth error", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		connector := newTestConnector(t, &Config{Username: "foobar"}, nil, handler)
		assert.ErrorIs(t, connector.Validate(context.Background()), domain.ErrAuthInvalid)
	})

	t.Run("other failures map to validation error", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		connector := newTestConnector(t, &Config{Username: "foobar"}, nil, handler)
		assert.ErrorIs(t, connector.Validate(context.Background()), domain.ErrConnectorValidation)
	})
}

func TestConnectorIdentity(t *testing.T) {
	connector := New("src-9", &Config{Username: "foobar"}, nil, nil)
	assert.Equal(t, "bitbucket", connector.Type())
	assert.Equal(t, "src-9", connector.SourceID())
}
