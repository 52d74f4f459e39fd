package worker

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stash-kv/stash/cmd/util"
	"github.com/stash-kv/stash/lib/store/memstore"
	"github.com/stash-kv/stash/rpc/common"
	"github.com/stash-kv/stash/rpc/server"
)

var (
	workerCmdConfig = &common.ServerConfig{}

	// WorkerCmd represents the worker command
	WorkerCmd = &cobra.Command{
		Use:     "worker",
		Short:   "Spawn a worker in the background",
		Long:    `Start the stash worker, by default detached from the terminal with its output redirected to log files. The configuration can be set via command line flags or environment variables in the form STASH_<flag> (e.g. STASH_LOG_LEVEL=debug).`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// add flags
	key := "foreground"
	WorkerCmd.PersistentFlags().Bool(key, false, util.WrapString("Run the worker in the foreground instead of detaching"))

	key = "pid-file"
	WorkerCmd.PersistentFlags().String(key, "/tmp/stash.pid", util.WrapString("File holding the PID of the running worker"))

	key = "stdout-file"
	WorkerCmd.PersistentFlags().String(key, "/tmp/stash.out", util.WrapString("File the detached worker's stdout is redirected to"))

	key = "stderr-file"
	WorkerCmd.PersistentFlags().String(key, "/tmp/stash.err", util.WrapString("File the detached worker's stderr is redirected to"))

	key = "metrics-endpoint"
	WorkerCmd.PersistentFlags().String(key, "", util.WrapString("Optional HTTP address exposing /metrics and pprof for the running worker (e.g. localhost:6060)"))

	key = "log-level"
	WorkerCmd.PersistentFlags().String(key, "info", util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and
// environment variables and converts them to the worker configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	workerCmdConfig = util.GetServerConfig()
	return nil
}

func run(_ *cobra.Command, _ []string) error {
	if !viper.GetBool("foreground") {
		return detach()
	}
	return serve()
}

// --------------------------------------------------------------------------
// Foreground serve path
// --------------------------------------------------------------------------

// serve runs the worker in the calling process until EXT or a signal.
func serve() error {
	common.InitLoggers(workerCmdConfig.LogLevel)

	pidFile := viper.GetString("pid-file")
	if pid, running := runningWorker(pidFile); running {
		return fmt.Errorf("worker already running (pid %d)", pid)
	}
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	defer os.Remove(pidFile)

	connector, err := util.GetServerConnector()
	if err != nil {
		return err
	}

	srv := server.New(*workerCmdConfig, connector, memstore.New())

	// Close the listener on SIGINT/SIGTERM so the accept loop exits and
	// the deferred endpoint cleanup still runs.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		sig := <-sigCh
		server.Logger.Infof("Received %v, shutting down", sig)
		srv.Shutdown()
	}()

	return srv.Serve()
}

// --------------------------------------------------------------------------
// Background (detach) path
// --------------------------------------------------------------------------

// detach re-execs this binary with --foreground, its output redirected to
// the configured log files, and returns once the child is started.
func detach() error {
	pidFile := viper.GetString("pid-file")
	if pid, running := runningWorker(pidFile); running {
		return fmt.Errorf("worker already running (pid %d)", pid)
	}

	stdout, err := os.Create(viper.GetString("stdout-file"))
	if err != nil {
		return fmt.Errorf("failed to create stdout file: %w", err)
	}
	defer stdout.Close()

	stderr, err := os.Create(viper.GetString("stderr-file"))
	if err != nil {
		return fmt.Errorf("failed to create stderr file: %w", err)
	}
	defer stderr.Close()

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve own binary: %w", err)
	}

	args := append([]string{}, os.Args[1:]...)
	args = append(args, "--foreground")

	child := exec.Command(exe, args...)
	child.Stdout = stdout
	child.Stderr = stderr
	child.Dir = "/"

	if err := child.Start(); err != nil {
		return fmt.Errorf("failed to start background worker: %w", err)
	}

	fmt.Printf("started background worker (pid %d)\n", child.Process.Pid)
	return nil
}

// runningWorker reports whether the pid file names a live process.
func runningWorker(pidFile string) (int, bool) {
	data, err := os.ReadFile(pidFile)
	if err != nil {
		return 0, false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return 0, false
	}
	if err := proc.Signal(syscall.Signal(0)); err != nil {
		// Stale pid file from a crashed worker
		return 0, false
	}
	return pid, true
}
