package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/fleettop/internal/config"
	rrerrors "github.com/rileyhilliard/fleettop/internal/errors"
	"github.com/rileyhilliard/fleettop/internal/logger"
	"github.com/rileyhilliard/fleettop/internal/monitor"
	"github.com/rileyhilliard/fleettop/internal/nodeset"
	"github.com/rileyhilliard/fleettop/internal/ui"
	"github.com/rileyhilliard/fleettop/pkg/sshutil"
	"golang.org/x/term"
)

// runDashboard monitors the hosts in expr until the user quits or ctx ends.
func runDashboard(ctx context.Context, expr string, cfg *config.Config) error {
	hosts, err := resolveHosts(expr, sshutil.ParseSSHConfig)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return rrerrors.New(rrerrors.ErrTerminal,
			"Standard output is not a terminal",
			"fleettop draws a full-screen dashboard. Run it in an interactive terminal, not through a pipe.")
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	log := logger.NewEnvLogger("[fleettop]")
	logger.SetDefault(log)
	sshutil.WarningHandler = func(msg string) { log.Warn("%s", msg) }
	defer sshutil.CloseAgent()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := monitor.NewAggregator()
	defer events.Close()

	var metrics *monitor.Metrics
	if cfg.MetricsAddr != "" {
		metrics = monitor.NewMetrics()
		metrics.WatchQueue(events)
		srv, addr, err := serveMetrics(cfg.MetricsAddr, metrics.Handler(), log)
		if err != nil {
			return err
		}
		defer srv.Close()
		log.Info("serving metrics on http://%s/metrics", addr)
	}

	input := monitor.NewInputSource(events, cfg.TickRate)
	keys := ui.DefaultKeyMap()
	program := ui.NewProgram(ui.NewModel(input, keys), tea.WithAltScreen(), tea.WithMouseCellMotion())

	log.Info("monitoring %d hosts", len(hosts))

	// Producers: one monitor per host plus the input source. They stop when
	// the aggregator closes.
	var wg sync.WaitGroup
	dialer := sshutil.NewDialer(cfg.SSHOptions())
	for _, host := range hosts {
		opts := cfg.MonitorOptions()
		opts.Log = logger.NewEnvLogger("[" + host + "]")
		m := monitor.NewHostMonitor(host, dialer, events, opts)

		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Run(ctx)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		input.Run(ctx)
	}()

	loop := &monitor.Loop{
		Events:   events,
		Store:    monitor.NewStatusStore(hosts),
		Renderer: program,
		Quit:     keys.IsQuit,
		Metrics:  metrics,
		History:  monitor.NewHistory(cfg.HistorySize),
		Log:      logger.NewEnvLogger("[loop]"),
	}

	loopDone := make(chan error, 1)
	go func() {
		err := loop.Run(ctx)
		program.Quit()
		loopDone <- err
	}()

	runErr := program.Run()

	// However the program ended, stop the loop and every producer, then
	// wait for sessions to close.
	events.Close()
	cancel()
	loopErr := <-loopDone
	wg.Wait()

	if runErr != nil {
		return rrerrors.WrapWithCode(runErr, rrerrors.ErrTerminal,
			"Terminal error",
			"Check that your terminal supports full-screen programs (TERM is set).")
	}
	if loopErr != nil && !errors.Is(loopErr, context.Canceled) {
		return loopErr
	}
	return nil
}

// resolveHosts expands expr into host names. Names with glob characters
// are replaced by the matching ~/.ssh/config aliases, loaded at most once.
func resolveHosts(expr string, sshEntries func() ([]sshutil.SSHHostEntry, error)) ([]string, error) {
	names, err := nodeset.Expand(expr)
	if err != nil {
		return nil, err
	}

	var (
		entries []sshutil.SSHHostEntry
		loaded  bool
		hosts   []string
		seen    = make(map[string]bool)
	)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			hosts = append(hosts, name)
		}
	}

	for _, name := range names {
		if !sshutil.IsPattern(name) {
			add(name)
			continue
		}

		if !loaded {
			entries, err = sshEntries()
			if err != nil {
				return nil, rrerrors.WrapWithCode(err, rrerrors.ErrConfig,
					"Couldn't read ~/.ssh/config to match '"+name+"'",
					"Fix the SSH config or list the hosts explicitly.")
			}
			loaded = true
		}

		matched, err := sshutil.MatchHosts(entries, name)
		if err != nil {
			return nil, rrerrors.WrapWithCode(err, rrerrors.ErrRange,
				"Invalid host pattern '"+name+"'", "")
		}
		if len(matched) == 0 {
			return nil, rrerrors.New(rrerrors.ErrRange,
				"No hosts in ~/.ssh/config match '"+name+"'",
				"Run 'fleettop hosts' to see the aliases that can be matched.")
		}
		for _, h := range matched {
			add(h.Alias)
		}
	}

	return hosts, nil
}

// setupLogging points the standard logger at path, or discards log output
// when path is empty, so nothing is written over the dashboard. The returned
// func restores stderr.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}

	f, err := tea.LogToFile(path, "fleettop")
	if err != nil {
		return nil, rrerrors.WrapWithCode(err, rrerrors.ErrConfig,
			"Can't open log file "+path,
			"Check the directory exists and is writable, or drop --log-file.")
	}
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

// serveMetrics serves h on addr at /metrics in the background. It returns
// the address actually bound, which differs from addr for port 0.
func serveMetrics(addr string, h http.Handler, log logger.Logger) (*http.Server, string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", rrerrors.WrapWithCode(err, rrerrors.ErrConfig,
			fmt.Sprintf("Can't serve metrics on %s", addr),
			"Pick a free address, e.g. --metrics-addr 127.0.0.1:9100")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped: %v", err)
		}
	}()

	return srv, ln.Addr().String(), nil
}
