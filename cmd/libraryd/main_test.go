package main

import (
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/codtech/libraryd/pkg/api"
	"github.com/codtech/libraryd/pkg/cli"
	"github.com/codtech/libraryd/pkg/events"
	"github.com/codtech/libraryd/pkg/library"
	"github.com/codtech/libraryd/pkg/store"
)

// TestMain acts as the main entrypoint. Testscript requires its own Main wrapper.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"libraryd": cli.Main,
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		// Each script gets its own freshly seeded server.
		Setup: func(env *testscript.Env) error {
			hub := events.NewHub(0)
			metrics := store.NewMetricsObserver()
			catalog, err := library.New(library.Options{
				Seed:     library.DefaultSeed(),
				Observer: store.Multi(hub, metrics),
			})
			if err != nil {
				return err
			}
			srv, err := api.New(catalog, api.WithHub(hub), api.WithMetrics(metrics))
			if err != nil {
				return err
			}

			ts := httptest.NewServer(srv.Handler())
			env.Defer(ts.Close)
			env.Setenv(cli.EnvServer, ts.URL)
			return nil
		},
	})
}
