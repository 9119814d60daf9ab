package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blocksim/tui-go/internal/api"
	"github.com/blocksim/tui-go/internal/poll"
)

// --- Session / auth messages ---

// sessionRestoredMsg is sent once the persisted session has been read.
type sessionRestoredMsg struct {
	err error
}

type loginDoneMsg struct {
	result *api.LoginResult
	err    error
}

type signupDoneMsg struct {
	result *api.Message
	err    error
}

// --- Recovery flow messages ---

type otpRequestedMsg struct {
	err error
}

type otpResentMsg struct {
	err error
}

type otpVerifiedMsg struct {
	err error
}

type passwordResetMsg struct {
	err error
}

// --- Poll messages ---

type statsTickMsg time.Time

type pendingTickMsg time.Time

type chainTickMsg time.Time

// statsFetchedMsg carries the dashboard aggregate (chain + pending). Each
// fetched message names the task that issued it: sequence numbers restart
// per mount, so a response is only meaningful to its own task.
type statsFetchedMsg struct {
	task    *poll.Task
	seq     uint64
	chain   []api.Block
	pending []api.Transaction
	err     error
}

type pendingFetchedMsg struct {
	task *poll.Task
	seq  uint64
	txs  []api.Transaction
	err  error
}

type chainFetchedMsg struct {
	task   *poll.Task
	seq    uint64
	blocks []api.Block
	err    error
}

// --- Action messages ---

type txCreatedMsg struct {
	tx  *api.Transaction
	err error
}

// mineTickMsg advances the progress simulation. The generation is bumped
// when the mine view unmounts, so a tick chain from a previous mount dies
// instead of stacking onto the one the remount starts.
type mineTickMsg struct {
	gen int
}

// mineCollectedMsg reports the pre-flight pending fetch that runs before
// the mine request itself.
type mineCollectedMsg struct {
	count int
	err   error
}

type mineDoneMsg struct {
	pendingCount int
	block        *api.Block
	err          error
}

// mineResetMsg returns the mining panel to idle after the completion
// display delay.
type mineResetMsg struct{}

type balanceFetchedMsg struct {
	balance *api.Balance
	err     error
}

type validateDoneMsg struct {
	result *api.ValidationResult
	err    error
}

// tickEvery schedules one tick of the given message kind.
func tickEvery(interval time.Duration, mk func(time.Time) tea.Msg) tea.Cmd {
	return tea.Tick(interval, mk)
}
