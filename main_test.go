package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales/seed"
)

func TestRunDemo(t *testing.T) {
	for _, storage := range []string{storageMemory, storageSQLite} {
		t.Run(storage, func(t *testing.T) {
			var out bytes.Buffer
			salesService, closeFn, err := newSalesService(&config{Storage: storage}, &out)
			require.NoError(t, err)
			defer closeFn()

			seed.Demo().Apply(salesService)
			runDemo(salesService)

			assert.Equal(t,
				"Product with id 99 not found.\n"+
					"Sale completed successfully. Total: $5.50\n"+
					"Customer not found.\n",
				out.String())

			sales, err := salesService.Sales()
			require.NoError(t, err)
			require.Len(t, sales, 1)
			assert.Equal(t, 1, sales[0].ID())
			assert.Equal(t, 2, salesService.NextSaleID())
		})
	}
}

func TestSetupLogging(t *testing.T) {
	level := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(level) })

	assert.NoError(t, setupLogging(&config{LogFormat: "text", LogLevel: "debug"}))
	assert.Error(t, setupLogging(&config{LogFormat: "text", LogLevel: "loud"}))
}

func TestConcurrentSalesOnSQLite(t *testing.T) {
	const workers = 20

	salesService, closeFn, err := newSalesService(&config{Storage: storageSQLite}, io.Discard)
	require.NoError(t, err)
	defer closeFn()
	seed.Demo().Apply(salesService)

	ids := make(chan int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sale, err := salesService.RecordSale(1, []int{1, 99})
			if assert.NoError(t, err) {
				ids <- sale.ID()
			}
		}()
	}
	wg.Wait()
	close(ids)

	var got []int
	for id := range ids {
		got = append(got, id)
	}
	sort.Ints(got)
	require.Len(t, got, workers)
	for i, id := range got {
		assert.Equal(t, i+1, id)
	}
	assert.Equal(t, workers+1, salesService.NextSaleID())

	sales, err := salesService.Sales()
	require.NoError(t, err)
	require.Len(t, sales, workers)
	for _, sale := range sales {
		assert.Equal(t, "2.50", sale.Total().StringFixed(2))
	}
}

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := l.Addr().String()
	require.NoError(t, l.Close())
	return address
}

func waitResult(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
		return nil
	}
}

func TestListenAndServe(t *testing.T) {
	t.Run("Stops cleanly when the context is cancelled", func(t *testing.T) {
		address := freeAddress(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		errCh := make(chan error, 1)
		go func() { errCh <- listenAndServe(ctx, address, handler) }()

		require.Eventually(t, func() bool {
			resp, err := http.Get("http://" + address + "/")
			if err != nil {
				return false
			}
			_ = resp.Body.Close()
			return resp.StatusCode == http.StatusNoContent
		}, 5*time.Second, 20*time.Millisecond)

		cancel()
		assert.NoError(t, waitResult(t, errCh))
	})

	t.Run("Reports listen failures", func(t *testing.T) {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer l.Close()

		err = listenAndServe(context.Background(), l.Addr().String(), http.NotFoundHandler())
		assert.ErrorContains(t, err, "listen")
	})
}

func TestRunServer(t *testing.T) {
	t.Run("Seed is registered before serving", func(t *testing.T) {
		seedFile := filepath.Join(t.TempDir(), "seed.json")
		content := `{"customers":[{"id":1,"name":"Ana","address":"Calle 1"}],"products":[{"id":1,"name":"Pan","price":"2.50"}]}`
		require.NoError(t, os.WriteFile(seedFile, []byte(content), 0o600))

		address := freeAddress(t)
		cfg := &config{ServeAddress: address, Storage: storageSQLite, SeedFile: seedFile}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errCh := make(chan error, 1)
		go func() { errCh <- runServer(ctx, cfg, io.Discard) }()

		var body []byte
		require.Eventually(t, func() bool {
			resp, err := http.Get("http://" + address + "/api/v1/customers")
			if err != nil {
				return false
			}
			defer resp.Body.Close()
			body, err = io.ReadAll(resp.Body)
			return err == nil && resp.StatusCode == http.StatusOK
		}, 5*time.Second, 20*time.Millisecond)
		assert.JSONEq(t, `[{"id":1,"name":"Ana","address":"Calle 1"}]`, string(body))

		cancel()
		assert.NoError(t, waitResult(t, errCh))
	})

	t.Run("Malformed seed aborts startup", func(t *testing.T) {
		seedFile := filepath.Join(t.TempDir(), "seed.json")
		require.NoError(t, os.WriteFile(seedFile, []byte("{"), 0o600))

		cfg := &config{ServeAddress: freeAddress(t), Storage: storageMemory, SeedFile: seedFile}
		err := runServer(context.Background(), cfg, io.Discard)
		assert.ErrorContains(t, err, "parse seed file")
	})

	t.Run("Missing seed starts empty", func(t *testing.T) {
		address := freeAddress(t)
		cfg := &config{ServeAddress: address, Storage: storageMemory, SeedFile: filepath.Join(t.TempDir(), "absent.json")}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errCh := make(chan error, 1)
		go func() { errCh <- runServer(ctx, cfg, io.Discard) }()

		require.Eventually(t, func() bool {
			resp, err := http.Get("http://" + address + "/api/v1/customers")
			if err != nil {
				return false
			}
			defer resp.Body.Close()
			b, err := io.ReadAll(resp.Body)
			return err == nil && resp.StatusCode == http.StatusOK && string(b) == "[]"
		}, 5*time.Second, 20*time.Millisecond)

		cancel()
		assert.NoError(t, waitResult(t, errCh))
	})
}
