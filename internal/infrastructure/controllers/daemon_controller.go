package controllers

import (
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zachmueller/multi-git-sub002/internal/domain/entities"
	"github.com/zachmueller/multi-git-sub002/internal/scheduler"
)

// DaemonController handles the "daemon" subcommand: run the background
// fetch scheduler until the process is asked to stop.
type DaemonController struct {
	scheduler *scheduler.Scheduler
}

// NewDaemonController creates a new DaemonController.
func NewDaemonController(sched *scheduler.Scheduler) *DaemonController {
	return &DaemonController{scheduler: sched}
}

// GetBind returns the Cobra command metadata for the daemon controller.
func (it *DaemonController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "daemon",
		Short: "Run the background fetch scheduler",
		Long: `Arm one fetch timer per enabled repository and keep fetching on each
repository's interval until SIGINT or SIGTERM arrives. Timers are then
cancelled; an in-flight fetch runs to completion or to its timeout.`,
	}
}

// Execute starts all timers and blocks until a shutdown signal.
func (it *DaemonController) Execute(_ *cobra.Command, _ []string) {
	it.scheduler.StartAll()
	logger.Info("Fetch scheduler started, press Ctrl+C to stop")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	it.scheduler.StopAll()
}
