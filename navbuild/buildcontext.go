package navbuild

import (
	"fmt"
	"time"
)

// Recast log categories.
type LogCategory int

const (
	LogProgress LogCategory = 1 + iota // A progress log entry.
	LogWarning                         // A warning log entry.
	LogError                           // An error log entry.
)

const maxMessages = 1000

// BuildContext is the build context for recast.
//
// It stores log messages (Log, Progressf, Warningf, Errorf), which can be
// read back with LogCount, LogText and DumpLog, and accumulates per-phase
// performance timers (StartTimer, StopTimer, AccumulatedTime). Logging and
// timers are enabled or disabled independently.
//
// If no logging or timers are required, pass a context created with
// NewBuildContext(false) through the build process.
type BuildContext struct {
	startTime [MaxTimers]time.Time
	accTime   [MaxTimers]time.Duration

	messages    [maxMessages]string
	numMessages int
	textPool    string

	// True if logging is enabled.
	m_logEnabled bool

	// True if the performance timers are enabled.
	m_timerEnabled bool
}

func NewBuildContext(state bool) *BuildContext {
	return &BuildContext{
		m_logEnabled:   state,
		m_timerEnabled: state,
	}
}

// Enables or disables logging.
func (ctx *BuildContext) EnableLog(state bool) {
	ctx.m_logEnabled = state
}

// Enables or disables the performance timers.
func (ctx *BuildContext) EnableTimer(state bool) {
	ctx.m_timerEnabled = state
}

// Clears all log entries.
func (ctx *BuildContext) ResetLog() {
	if ctx.m_logEnabled {
		ctx.numMessages = 0
	}
}

// Clears all peformance timers. (Resets all to unused.)
func (ctx *BuildContext) ResetTimers() {
	if ctx.m_timerEnabled {
		for i := 0; i < MaxTimers; i++ {
			ctx.accTime[i] = time.Duration(0)
		}
	}
}

func (ctx *BuildContext) Progressf(format string, v ...interface{}) {
	ctx.Log(LogProgress, format, v...)
}

func (ctx *BuildContext) Warningf(format string, v ...interface{}) {
	ctx.Log(LogWarning, format, v...)
}

func (ctx *BuildContext) Errorf(format string, v ...interface{}) {
	ctx.Log(LogError, format, v...)
}

// Logs a message.
func (ctx *BuildContext) Log(category LogCategory, format string, v ...interface{}) {
	if ctx.m_logEnabled && ctx.numMessages < maxMessages {
		// Store message
		switch category {
		case LogProgress:
			ctx.messages[ctx.numMessages] = "PROG " + fmt.Sprintf(format, v...)
		case LogWarning:
			ctx.messages[ctx.numMessages] = "WARN " + fmt.Sprintf(format, v...)
		case LogError:
			ctx.messages[ctx.numMessages] = "ERR " + fmt.Sprintf(format, v...)
		}
		ctx.numMessages++
	}
}

// Dumps the log to stdout.
func (ctx *BuildContext) DumpLog(format string, args ...interface{}) {

	// Print header.
	fmt.Printf(format+"\n", args...)

	// Print messages
	for i := 0; i < ctx.numMessages; i++ {
		msg := ctx.messages[i]
		fmt.Println(msg)
	}
}

func (ctx *BuildContext) LogCount() int {
	return ctx.numMessages
}

// Returns log message text.
func (ctx *BuildContext) LogText(i int32) string {
	return ctx.messages[i]
}

// Starts the specified performance timer.
func (ctx *BuildContext) StartTimer(label TimerLabel) {
	if ctx.m_timerEnabled {
		ctx.startTime[label] = time.Now()
	}
}

// Stops the specified performance timer.
func (ctx *BuildContext) StopTimer(label TimerLabel) {
	if ctx.m_timerEnabled {
		deltaTime := time.Now().Sub(ctx.startTime[label])
		if ctx.accTime[label] == 0 {
			ctx.accTime[label] = deltaTime
		} else {
			ctx.accTime[label] += deltaTime
		}
	}
}

// Returns the total accumulated time of the specified performance timer.
func (ctx *BuildContext) AccumulatedTime(label TimerLabel) time.Duration {
	if ctx.m_timerEnabled {
		return ctx.accTime[label]
	} else {
		return time.Duration(0)
	}
}
