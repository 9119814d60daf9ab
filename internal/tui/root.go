package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"

	"github.com/blocksim/tui-go/internal/api"
	"github.com/blocksim/tui-go/internal/config"
	"github.com/blocksim/tui-go/internal/mining"
	"github.com/blocksim/tui-go/internal/poll"
	"github.com/blocksim/tui-go/internal/recovery"
	"github.com/blocksim/tui-go/internal/session"
)

// failureWindow rate-limits poll failure notifications; a flapping server
// produces one toast per window, not one per tick.
const failureWindow = 30 * time.Second

// Model is the root bubbletea model. It owns navigation, the poll task
// lifecycle, and dispatch to the per-view components.
type Model struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Manager
	flow    *recovery.Flow
	sim     *mining.Simulator
	logger  *slog.Logger

	keys  KeyMap
	guard Guard
	view  View

	login  LoginForm
	signup SignupForm
	forgot ForgotPasswordForm
	verify VerifyOTPForm
	reset  ResetPasswordForm

	dashboard    Dashboard
	transactions Transactions
	mine         Mine
	chain        Chain

	statsTask   *poll.Task
	pendingTask *poll.Task
	chainTask   *poll.Task
	failures    *poll.FailureGate
	mineGen     int

	toaster Toaster
	debug   DebugPanel

	width  int
	height int
}

// NewModel creates the root model. The clock is injected so tests can
// drive the mining simulation and failure gate deterministically.
func NewModel(cfg *config.Config, client *api.Client, sess *session.Manager, flow *recovery.Flow, logger *slog.Logger, clock clockwork.Clock) Model {
	if logger == nil {
		logger = slog.Default()
	}
	sim := mining.NewSimulator(clock)
	return Model{
		cfg:          cfg,
		client:       client,
		session:      sess,
		flow:         flow,
		sim:          sim,
		logger:       logger,
		keys:         DefaultKeyMap(),
		guard:        NewGuard(),
		view:         ViewLogin,
		login:        NewLoginForm(),
		signup:       NewSignupForm(),
		forgot:       NewForgotPasswordForm(),
		verify:       NewVerifyOTPForm(""),
		reset:        NewResetPasswordForm(),
		dashboard:    NewDashboard(),
		transactions: NewTransactions(),
		mine:         NewMine(sim, cfg.MinerAddress),
		chain:        NewChain(),
		failures:     poll.NewFailureGate(clock, failureWindow),
		debug:        NewDebugPanel(cfg.Debug),
	}
}

// Init restores the persisted session before anything protected renders.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return sessionRestoredMsg{err: m.session.Initialize()}
	}
}

// --- Commands ---

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.session.Login(context.Background(), email, password)
		return loginDoneMsg{result: result, err: err}
	}
}

func (m Model) signupCmd(req api.SignupRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := m.session.Signup(context.Background(), req)
		return signupDoneMsg{result: result, err: err}
	}
}

func (m Model) requestCodeCmd(email string) tea.Cmd {
	return func() tea.Msg {
		return otpRequestedMsg{err: m.flow.RequestCode(context.Background(), email)}
	}
}

func (m Model) resendCodeCmd() tea.Cmd {
	return func() tea.Msg {
		return otpResentMsg{err: m.flow.Resend(context.Background())}
	}
}

func (m Model) verifyCodeCmd(code string) tea.Cmd {
	return func() tea.Msg {
		return otpVerifiedMsg{err: m.flow.VerifyCode(context.Background(), code)}
	}
}

func (m Model) resetPasswordCmd(password, confirm string) tea.Cmd {
	return func() tea.Msg {
		return passwordResetMsg{err: m.flow.ResetPassword(context.Background(), password, confirm)}
	}
}

func (m Model) fetchStatsCmd(task *poll.Task, seq uint64) tea.Cmd {
	return func() tea.Msg {
		chain, err := m.client.GetChain(context.Background())
		if err != nil {
			return statsFetchedMsg{task: task, seq: seq, err: err}
		}
		pending, err := m.client.GetPending(context.Background())
		if err != nil {
			return statsFetchedMsg{task: task, seq: seq, err: err}
		}
		return statsFetchedMsg{task: task, seq: seq, chain: chain, pending: pending}
	}
}

func (m Model) fetchPendingCmd(task *poll.Task, seq uint64) tea.Cmd {
	return func() tea.Msg {
		txs, err := m.client.GetPending(context.Background())
		return pendingFetchedMsg{task: task, seq: seq, txs: txs, err: err}
	}
}

func (m Model) fetchChainCmd(task *poll.Task, seq uint64) tea.Cmd {
	return func() tea.Msg {
		blocks, err := m.client.GetChain(context.Background())
		return chainFetchedMsg{task: task, seq: seq, blocks: blocks, err: err}
	}
}

func (m Model) createTxCmd(tx api.Transaction) tea.Cmd {
	return func() tea.Msg {
		created, err := m.client.CreateTransaction(context.Background(), tx)
		return txCreatedMsg{tx: created, err: err}
	}
}

func (m Model) collectPendingCmd() tea.Cmd {
	return func() tea.Msg {
		txs, err := m.client.GetPending(context.Background())
		return mineCollectedMsg{count: len(txs), err: err}
	}
}

func (m Model) mineCmd(minerAddress string) tea.Cmd {
	return func() tea.Msg {
		block, err := m.client.MineBlock(context.Background(), minerAddress)
		if err != nil {
			return mineDoneMsg{err: err}
		}
		return mineDoneMsg{pendingCount: len(block.Transactions), block: block}
	}
}

func (m Model) fetchBalanceCmd() tea.Cmd {
	address := m.mine.Address()
	return func() tea.Msg {
		balance, err := m.client.GetBalance(context.Background(), address)
		return balanceFetchedMsg{balance: balance, err: err}
	}
}

func (m Model) validateCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := m.client.ValidateChain(context.Background())
		return validateDoneMsg{result: result, err: err}
	}
}

func statsTick(interval time.Duration) tea.Cmd {
	return tickEvery(interval, func(t time.Time) tea.Msg { return statsTickMsg(t) })
}

func pendingTick(interval time.Duration) tea.Cmd {
	return tickEvery(interval, func(t time.Time) tea.Msg { return pendingTickMsg(t) })
}

func chainTick(interval time.Duration) tea.Cmd {
	return tickEvery(interval, func(t time.Time) tea.Msg { return chainTickMsg(t) })
}

func mineTick(gen int) tea.Cmd {
	return tea.Tick(mining.TickInterval, func(time.Time) tea.Msg { return mineTickMsg{gen: gen} })
}

func mineResetAfter() tea.Cmd {
	return tea.Tick(mining.ResetDelay, func(time.Time) tea.Msg { return mineResetMsg{} })
}

// --- Navigation ---

// navigate routes to the requested view through the guard, stops the
// leaving view's poll tasks, and mounts the arriving view's.
func (m Model) navigate(requested View) (Model, tea.Cmd) {
	target := m.guard.Route(requested)

	// Recovery steps are addressable but re-check their entry guards:
	// skipping ahead lands back at the start of the flow.
	if target == ViewVerifyOTP && !m.flow.CanEnterVerify() {
		target = ViewForgotPassword
	}
	if target == ViewResetPassword && !m.flow.CanEnterReset() {
		target = ViewForgotPassword
	}

	if target == m.view {
		return m, nil
	}

	m.unmount(m.view)
	m.debug.Event("navigate", fmt.Sprintf("%s → %s", m.view, target))
	m.view = target
	return m.mount(target)
}

// unmount stops whatever the leaving view keeps running.
func (m *Model) unmount(v View) {
	switch v {
	case ViewDashboard:
		if m.statsTask != nil {
			m.statsTask.Stop()
		}
	case ViewTransactions:
		if m.pendingTask != nil {
			m.pendingTask.Stop()
		}
		m.transactions.StopEditing()
	case ViewMine:
		m.mine.StopEditing()
		m.mineGen++
	case ViewChain:
		if m.chainTask != nil {
			m.chainTask.Stop()
		}
	}
}

// mount prepares the arriving view: fresh forms for the public screens,
// a fresh poll task plus an immediate fetch for the data screens.
func (m Model) mount(v View) (Model, tea.Cmd) {
	switch v {
	case ViewLogin:
		m.login = NewLoginForm()
	case ViewSignup:
		m.signup = NewSignupForm()
	case ViewForgotPassword:
		m.forgot = NewForgotPasswordForm()
	case ViewVerifyOTP:
		m.verify = NewVerifyOTPForm(m.flow.Email())
	case ViewResetPassword:
		m.reset = NewResetPasswordForm()
	case ViewDashboard:
		m.statsTask = poll.NewTask("stats")
		seq, _ := m.statsTask.Begin()
		return m, tea.Batch(m.fetchStatsCmd(m.statsTask, seq), statsTick(m.cfg.ChainPollInterval))
	case ViewTransactions:
		m.pendingTask = poll.NewTask("pending")
		seq, _ := m.pendingTask.Begin()
		return m, tea.Batch(m.fetchPendingCmd(m.pendingTask, seq), pendingTick(m.cfg.TxPollInterval))
	case ViewMine:
		cmds := []tea.Cmd{m.fetchBalanceCmd()}
		if m.sim.Running() {
			// resume the simulation tick paused on unmount
			cmds = append(cmds, mineTick(m.mineGen))
		}
		return m, tea.Batch(cmds...)
	case ViewChain:
		m.chainTask = poll.NewTask("chain")
		seq, _ := m.chainTask.Begin()
		return m, tea.Batch(m.fetchChainCmd(m.chainTask, seq), chainTick(m.cfg.ChainPollInterval))
	}
	return m, nil
}

// sessionExpired reacts to a rejected authenticated call: the client hook
// has already cleared the stored credentials, so the UI just lands on
// login with a notice.
func (m Model) sessionExpired() (Model, tea.Cmd) {
	m.guard.Resolve(m.session.Status())
	m.debug.Event("session", "expired")
	var cmds []tea.Cmd
	cmds = append(cmds, m.toaster.Push("Session expired, please sign in again", true))
	var navCmd tea.Cmd
	m, navCmd = m.navigate(ViewLogin)
	cmds = append(cmds, navCmd)
	return m, tea.Batch(cmds...)
}

// pollFailed handles one failed poll response: previous data stays on
// screen and the failure surfaces at most once per window.
func (m Model) pollFailed(task *poll.Task, seq uint64, err error) (Model, tea.Cmd) {
	task.Fail(seq)
	if errors.Is(err, api.ErrSessionExpired) {
		return m.sessionExpired()
	}
	m.logger.Warn("poll failed", "resource", task.Resource(), "error", err)
	if m.failures.Allow() {
		return m, m.toaster.Push("Cannot reach the ledger service", true)
	}
	return m, nil
}

// --- Update ---

// Update is the single dispatch point for every message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chain.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionRestoredMsg:
		if msg.err != nil {
			m.logger.Error("session restore failed", "error", msg.err)
		}
		m.guard.Resolve(m.session.Status())
		if m.guard.State() == GuardProtected {
			return m.navigate(ViewDashboard)
		}
		return m.navigate(ViewLogin)

	case loginDoneMsg:
		m.login.Reset()
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrInvalidCredentials) {
				m.login.errMsg = "invalid email or password"
			} else {
				m.login.errMsg = remoteErrorText(msg.err)
			}
			return m, nil
		}
		m.guard.Resolve(m.session.Status())
		var cmds []tea.Cmd
		cmds = append(cmds, m.toaster.Push("Welcome back, "+msg.result.Name, false))
		var navCmd tea.Cmd
		m, navCmd = m.navigate(ViewDashboard)
		cmds = append(cmds, navCmd)
		return m, tea.Batch(cmds...)

	case signupDoneMsg:
		m.signup.Reset()
		if msg.err != nil {
			m.signup.errMsg = remoteErrorText(msg.err)
			return m, nil
		}
		var cmds []tea.Cmd
		cmds = append(cmds, m.toaster.Push("Account created, please sign in", false))
		var navCmd tea.Cmd
		m, navCmd = m.navigate(ViewLogin)
		cmds = append(cmds, navCmd)
		return m, tea.Batch(cmds...)

	case otpRequestedMsg:
		m.forgot.Reset()
		if msg.err != nil {
			m.forgot.errMsg = remoteErrorText(msg.err)
			return m, nil
		}
		var cmds []tea.Cmd
		cmds = append(cmds, m.toaster.Push("Recovery code sent", false))
		var navCmd tea.Cmd
		m, navCmd = m.navigate(ViewVerifyOTP)
		cmds = append(cmds, navCmd)
		return m, tea.Batch(cmds...)

	case otpResentMsg:
		if msg.err != nil {
			return m, m.toaster.Push(remoteErrorText(msg.err), true)
		}
		return m, m.toaster.Push("Recovery code resent", false)

	case otpVerifiedMsg:
		m.verify.Reset()
		if msg.err != nil {
			m.verify.errMsg = remoteErrorText(msg.err)
			m.verify.ClearCode()
			return m, nil
		}
		return m.navigate(ViewResetPassword)

	case passwordResetMsg:
		m.reset.Reset()
		if msg.err != nil {
			m.reset.errMsg = remoteErrorText(msg.err)
			return m, nil
		}
		var cmds []tea.Cmd
		cmds = append(cmds, m.toaster.Push("Password reset, sign in with your new password", false))
		var navCmd tea.Cmd
		m, navCmd = m.navigate(ViewLogin)
		cmds = append(cmds, navCmd)
		return m, tea.Batch(cmds...)

	case statsTickMsg:
		if m.statsTask == nil || !m.statsTask.Active() {
			return m, nil
		}
		cmds := []tea.Cmd{statsTick(m.cfg.ChainPollInterval)}
		if seq, ok := m.statsTask.Begin(); ok {
			cmds = append(cmds, m.fetchStatsCmd(m.statsTask, seq))
		}
		return m, tea.Batch(cmds...)

	case statsFetchedMsg:
		// a response from a previous mount's task is meaningless here:
		// sequences restart per mount
		if msg.task != m.statsTask {
			return m, nil
		}
		if msg.err != nil {
			return m.pollFailed(m.statsTask, msg.seq, msg.err)
		}
		if m.statsTask.Apply(msg.seq) {
			m.dashboard.SetData(msg.chain, msg.pending)
			m.failures.Reset()
		}
		return m, nil

	case pendingTickMsg:
		if m.pendingTask == nil || !m.pendingTask.Active() {
			return m, nil
		}
		cmds := []tea.Cmd{pendingTick(m.cfg.TxPollInterval)}
		if seq, ok := m.pendingTask.Begin(); ok {
			cmds = append(cmds, m.fetchPendingCmd(m.pendingTask, seq))
		}
		return m, tea.Batch(cmds...)

	case pendingFetchedMsg:
		if msg.task != m.pendingTask {
			return m, nil
		}
		if msg.err != nil {
			return m.pollFailed(m.pendingTask, msg.seq, msg.err)
		}
		if m.pendingTask.Apply(msg.seq) {
			m.transactions.SetPending(msg.txs)
			m.failures.Reset()
		}
		return m, nil

	case chainTickMsg:
		if m.chainTask == nil || !m.chainTask.Active() {
			return m, nil
		}
		cmds := []tea.Cmd{chainTick(m.cfg.ChainPollInterval)}
		if seq, ok := m.chainTask.Begin(); ok {
			cmds = append(cmds, m.fetchChainCmd(m.chainTask, seq))
		}
		return m, tea.Batch(cmds...)

	case chainFetchedMsg:
		if msg.task != m.chainTask {
			return m, nil
		}
		if msg.err != nil {
			return m.pollFailed(m.chainTask, msg.seq, msg.err)
		}
		if m.chainTask.Apply(msg.seq) {
			m.chain.SetBlocks(msg.blocks)
			m.failures.Reset()
		}
		return m, nil

	case txCreatedMsg:
		m.transactions.Reset()
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrSessionExpired) {
				return m.sessionExpired()
			}
			m.transactions.errMsg = remoteErrorText(msg.err)
			return m, nil
		}
		m.transactions.ClearForm()
		cmds := []tea.Cmd{m.toaster.Push("Transaction submitted", false)}
		if m.pendingTask != nil {
			if seq, ok := m.pendingTask.Begin(); ok {
				cmds = append(cmds, m.fetchPendingCmd(m.pendingTask, seq))
			}
		}
		return m, tea.Batch(cmds...)

	case mineTickMsg:
		// a tick from a previous mount of the mine view is dead; only the
		// current generation's chain advances the simulation
		if msg.gen != m.mineGen || !m.sim.Running() || m.sim.Percent() >= 100 {
			return m, nil
		}
		m.sim.Advance()
		return m, mineTick(m.mineGen)

	case mineCollectedMsg:
		if !m.sim.Running() {
			return m, nil
		}
		if msg.err != nil {
			// the mine request itself decides success; the pre-flight
			// count is display only
			m.sim.Log("Collecting pending transactions...")
		} else {
			m.sim.Log(fmt.Sprintf("Collecting %d pending transactions...", msg.count))
		}
		return m, m.mineCmd(m.mine.Address())

	case mineDoneMsg:
		if msg.err != nil {
			m.sim.Log("Mining failed")
			m.sim.Fail()
			if errors.Is(msg.err, api.ErrSessionExpired) {
				return m.sessionExpired()
			}
			return m, m.toaster.Push(remoteErrorText(msg.err), true)
		}
		m.sim.Log(fmt.Sprintf("Sealed %d transactions", msg.pendingCount))
		m.sim.Log(fmt.Sprintf("Mined block #%d (nonce %d, hash %s)",
			msg.block.Index, msg.block.Nonce, shortHash(msg.block.Hash)))
		m.sim.Complete()
		m.mine.SetMinedBlock(*msg.block)
		cmds := []tea.Cmd{
			mineResetAfter(),
			m.fetchBalanceCmd(),
			m.toaster.Push(fmt.Sprintf("Block #%d mined", msg.block.Index), false),
		}
		if m.statsTask != nil {
			if seq, ok := m.statsTask.Begin(); ok {
				cmds = append(cmds, m.fetchStatsCmd(m.statsTask, seq))
			}
		}
		return m, tea.Batch(cmds...)

	case mineResetMsg:
		m.sim.Reset()
		return m, nil

	case balanceFetchedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrSessionExpired) {
				return m.sessionExpired()
			}
			m.logger.Warn("balance fetch failed", "error", msg.err)
			return m, nil
		}
		m.mine.SetBalance(*msg.balance)
		return m, nil

	case validateDoneMsg:
		m.chain.validating = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrSessionExpired) {
				return m.sessionExpired()
			}
			return m, m.toaster.Push(remoteErrorText(msg.err), true)
		}
		m.chain.SetValidation(*msg.result)
		if msg.result.Valid {
			return m, m.toaster.Push("Chain is valid", false)
		}
		return m, m.toaster.Push("Chain validation failed", true)

	case toastExpiredMsg:
		m.toaster.Expire(msg.id)
		return m, nil
	}

	return m, nil
}

// handleKey dispatches keyboard input for the current view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.guard.State() == GuardLoading {
		return m, nil
	}

	switch m.view {
	case ViewLogin:
		return m.handleLoginKey(msg)
	case ViewSignup:
		return m.handleSignupKey(msg)
	case ViewForgotPassword:
		return m.handleForgotKey(msg)
	case ViewVerifyOTP:
		return m.handleVerifyKey(msg)
	case ViewResetPassword:
		return m.handleResetKey(msg)
	default:
		return m.handleProtectedKey(msg)
	}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		m.login.CycleFocus()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if m.login.submitting {
			return m, nil
		}
		email, password := m.login.Values()
		if email == "" || password == "" {
			m.login.errMsg = "email and password are required"
			return m, nil
		}
		m.login.errMsg = ""
		m.login.submitting = true
		m.session.BeginLogin()
		return m, m.loginCmd(email, password)
	case msg.String() == "ctrl+s":
		return m.navigate(ViewSignup)
	case msg.String() == "ctrl+f":
		return m.navigate(ViewForgotPassword)
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return m, cmd
}

func (m Model) handleSignupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		m.signup.CycleFocus()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		return m.navigate(ViewLogin)
	case key.Matches(msg, m.keys.Enter):
		if m.signup.submitting {
			return m, nil
		}
		if errMsg := m.signup.Validate(); errMsg != "" {
			m.signup.errMsg = errMsg
			return m, nil
		}
		name, email, contact, password := m.signup.Values()
		m.signup.errMsg = ""
		m.signup.submitting = true
		return m, m.signupCmd(api.SignupRequest{
			Name:      name,
			Email:     email,
			Password:  password,
			ContactNo: contact,
		})
	}
	var cmd tea.Cmd
	m.signup, cmd = m.signup.Update(msg)
	return m, cmd
}

func (m Model) handleForgotKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.flow.Abandon()
		return m.navigate(ViewLogin)
	case key.Matches(msg, m.keys.Enter):
		if m.forgot.submitting {
			return m, nil
		}
		email := m.forgot.Value()
		if email == "" {
			m.forgot.errMsg = "email is required"
			return m, nil
		}
		m.forgot.errMsg = ""
		m.forgot.submitting = true
		return m, m.requestCodeCmd(email)
	}
	var cmd tea.Cmd
	m.forgot, cmd = m.forgot.Update(msg)
	return m, cmd
}

func (m Model) handleVerifyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.flow.Abandon()
		return m.navigate(ViewForgotPassword)
	case msg.String() == "ctrl+r":
		return m, m.resendCodeCmd()
	case key.Matches(msg, m.keys.Enter):
		if m.verify.submitting {
			return m, nil
		}
		m.verify.errMsg = ""
		m.verify.submitting = true
		return m, m.verifyCodeCmd(m.verify.Value())
	}
	var cmd tea.Cmd
	m.verify, cmd = m.verify.Update(msg)
	return m, cmd
}

func (m Model) handleResetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		m.reset.CycleFocus()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.flow.Abandon()
		return m.navigate(ViewForgotPassword)
	case key.Matches(msg, m.keys.Enter):
		if m.reset.submitting {
			return m, nil
		}
		password, confirm := m.reset.Values()
		m.reset.errMsg = ""
		m.reset.submitting = true
		return m, m.resetPasswordCmd(password, confirm)
	}
	var cmd tea.Cmd
	m.reset, cmd = m.reset.Update(msg)
	return m, cmd
}

func (m Model) handleProtectedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Logout) {
		if err := m.session.Logout(); err != nil {
			m.logger.Error("logout failed", "error", err)
		}
		m.guard.Resolve(m.session.Status())
		var cmds []tea.Cmd
		cmds = append(cmds, m.toaster.Push("Signed out", false))
		var navCmd tea.Cmd
		m, navCmd = m.navigate(ViewLogin)
		cmds = append(cmds, navCmd)
		return m, tea.Batch(cmds...)
	}

	// While a form owns the keyboard, view switching is suspended so
	// digits reach the focused field.
	if m.view == ViewTransactions && m.transactions.Editing() {
		return m.handleTransactionFormKey(msg)
	}
	if m.view == ViewMine && m.mine.Editing() {
		return m.handleMineAddressKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Dashboard):
		return m.navigate(ViewDashboard)
	case key.Matches(msg, m.keys.Transactions):
		return m.navigate(ViewTransactions)
	case key.Matches(msg, m.keys.Mine):
		return m.navigate(ViewMine)
	case key.Matches(msg, m.keys.Chain):
		return m.navigate(ViewChain)
	}

	switch m.view {
	case ViewDashboard:
		switch {
		case key.Matches(msg, m.keys.StartMine):
			return m.startMining()
		case key.Matches(msg, m.keys.Refresh):
			if m.statsTask != nil {
				if seq, ok := m.statsTask.Begin(); ok {
					return m, m.fetchStatsCmd(m.statsTask, seq)
				}
			}
		}
	case ViewTransactions:
		switch {
		case key.Matches(msg, m.keys.Tab):
			m.transactions.StartEditing()
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if m.pendingTask != nil {
				if seq, ok := m.pendingTask.Begin(); ok {
					return m, m.fetchPendingCmd(m.pendingTask, seq)
				}
			}
		}
	case ViewMine:
		switch {
		case key.Matches(msg, m.keys.StartMine):
			return m.startMining()
		case key.Matches(msg, m.keys.Tab):
			m.mine.StartEditing()
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.fetchBalanceCmd()
		}
	case ViewChain:
		if key.Matches(msg, m.keys.Validate) {
			if m.chain.validating {
				return m, nil
			}
			m.chain.validating = true
			return m, m.validateCmd()
		}
		var cmd tea.Cmd
		m.chain, cmd = m.chain.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleMineAddressKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Enter) {
		m.mine.StopEditing()
		return m, nil
	}
	var cmd tea.Cmd
	m.mine, cmd = m.mine.Update(msg)
	return m, cmd
}

func (m Model) handleTransactionFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.transactions.StopEditing()
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.transactions.CycleFocus()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if m.transactions.submitting {
			return m, nil
		}
		tx, errMsg := m.transactions.Build()
		if errMsg != "" {
			m.transactions.errMsg = errMsg
			return m, nil
		}
		m.transactions.errMsg = ""
		m.transactions.submitting = true
		return m, m.createTxCmd(tx)
	}
	var cmd tea.Cmd
	m.transactions, cmd = m.transactions.Update(msg)
	return m, cmd
}

// startMining begins the progress simulation and the real mine request.
// A second start while one is running is rejected.
func (m Model) startMining() (tea.Model, tea.Cmd) {
	if !m.sim.Start() {
		return m, nil
	}
	m.mine.StopEditing()
	m.debug.Event("mine", "started")
	cmds := []tea.Cmd{m.collectPendingCmd()}
	if m.view == ViewMine {
		cmds = append(cmds, mineTick(m.mineGen))
	} else {
		// mounting the mine view starts the tick chain
		var navCmd tea.Cmd
		m, navCmd = m.navigate(ViewMine)
		cmds = append(cmds, navCmd)
	}
	return m, tea.Batch(cmds...)
}

// remoteErrorText maps an outbound call failure to the line shown to the
// user.
func remoteErrorText(err error) string {
	var vErr *api.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	var nErr *api.NetworkError
	if errors.As(err, &nErr) {
		return "Cannot reach the ledger service"
	}
	var sErr *api.ServerError
	if errors.As(err, &sErr) {
		return fmt.Sprintf("Server error (%d)", sErr.StatusCode)
	}
	return err.Error()
}

// --- View ---

// View renders the active screen with the status bar and notifications.
func (m Model) View() string {
	if m.guard.State() == GuardLoading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			DimStyle.Render("Restoring session..."))
	}

	bodyHeight := m.height - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch m.view {
	case ViewLogin:
		body = m.login.View(m.width, bodyHeight)
	case ViewSignup:
		body = m.signup.View(m.width, bodyHeight)
	case ViewForgotPassword:
		body = m.forgot.View(m.width, bodyHeight)
	case ViewVerifyOTP:
		body = m.verify.View(m.width, bodyHeight)
	case ViewResetPassword:
		body = m.reset.View(m.width, bodyHeight)
	case ViewDashboard:
		body = m.dashboard.View(m.width, bodyHeight)
	case ViewTransactions:
		body = m.transactions.View(m.width, bodyHeight)
	case ViewMine:
		body = m.mine.View(m.width, bodyHeight)
	case ViewChain:
		body = m.chain.View(m.width, bodyHeight)
	}

	sections := []string{m.statusBar(), body}
	if toasts := m.toaster.View(); toasts != "" {
		sections = append(sections, toasts)
	}
	if m.debug.IsEnabled() {
		sections = append(sections, m.debug.Render(m.width, 6))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// statusBar renders the top bar: app name, tabs when signed in, identity.
func (m Model) statusBar() string {
	title := HeaderStyle.Render("BlockSim")

	if m.guard.State() != GuardProtected {
		return title
	}

	tabs := []struct {
		view  View
		label string
	}{
		{ViewDashboard, "1 Dashboard"},
		{ViewTransactions, "2 Transactions"},
		{ViewMine, "3 Mine"},
		{ViewChain, "4 Chain"},
	}
	rendered := make([]string, 0, len(tabs))
	for _, t := range tabs {
		style := TabInactiveStyle
		if t.view == m.view {
			style = TabActiveStyle
		}
		rendered = append(rendered, style.Render(t.label))
	}

	name, _ := m.session.Identity()
	identity := StatusBarStyle.Render(name)

	return lipgloss.JoinHorizontal(lipgloss.Center,
		title, lipgloss.JoinHorizontal(lipgloss.Center, rendered...), identity)
}
