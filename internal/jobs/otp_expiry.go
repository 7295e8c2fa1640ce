// File: internal/jobs/otp_expiry.go
package jobs

import (
	"fmt"
	"time"

	"bluestock_client/internal/auth"
	"bluestock_client/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OTPExpiryJob periodically drops expired registration drafts from the
// in-memory OTP store. The redis store expires keys natively, so the job
// is only scheduled when the memory backend is in use.
type OTPExpiryJob struct {
	store         *auth.MemoryOTPStore
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewOTPExpiryJob creates a new OTPExpiryJob. store may be nil when the
// redis backend is selected; SetupAndStart then does nothing.
func NewOTPExpiryJob(store *auth.MemoryOTPStore, logger *zap.Logger, cfg *config.Config) *OTPExpiryJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &OTPExpiryJob{
		store:         store,
		logger:        logger.Named("OTPExpiryJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the sweep.
func (j *OTPExpiryJob) SetupAndStart() error {
	if j.store == nil {
		j.logger.Debug("OTP store backend expires keys natively, sweep job not scheduled")
		return nil
	}

	jobSpec := j.cfg.OTPSweepSpec
	if jobSpec == "" {
		j.logger.Warn("OTP sweep schedule not defined (OTP_SWEEP_SPEC). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule OTP sweep job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("OTP sweep job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// Stop halts the scheduler, waiting for a running sweep to finish.
func (j *OTPExpiryJob) Stop() {
	ctx := j.cronScheduler.Stop()
	<-ctx.Done()
}

func (j *OTPExpiryJob) runJob() {
	removed := j.store.Sweep(time.Now())
	if removed > 0 {
		j.logger.Info("Expired OTP drafts removed", zap.Int("count", removed))
	}
}

// cronLogger adapts zap to cron's logging interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
