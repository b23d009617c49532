package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pizzetta/internal/config"
	"pizzetta/internal/domain"
	"pizzetta/internal/engine"
	"pizzetta/internal/render"
	"pizzetta/internal/store"
	"pizzetta/internal/util"
)

// Styles.
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	pendingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	preparingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	readyStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	deliveredStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))  // bright blue
	pickedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")) // orange
	colHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	priceStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	highlightBG    = lipgloss.Color("236") // dark grey background
)

// hlStyle returns a copy of s with the highlight background applied when hl is true.
func hlStyle(s lipgloss.Style, hl bool) lipgloss.Style {
	if hl {
		return s.Background(highlightBG)
	}
	return s
}

func statusStyle(st domain.Status) lipgloss.Style {
	switch st {
	case domain.StatusPending:
		return pendingStyle
	case domain.StatusPreparing:
		return preparingStyle
	case domain.StatusReady:
		return readyStyle
	case domain.StatusDelivered:
		return deliveredStyle
	default:
		return lipgloss.NewStyle()
	}
}

// Messages.
type ordersLoadedMsg struct {
	orders []domain.Order
	err    error
}

type orderCreatedMsg struct {
	order domain.Order
	err   error
}

type orderAdvancedMsg struct {
	order domain.Order
	err   error
}

type orderDeletedMsg struct {
	id  string
	err error
}

type historyLoadedMsg struct {
	orderID string
	changes []domain.StatusChange
	err     error
}

// Screens.
type screen int

const (
	screenMenu screen = iota
	screenCreate
	screenList
	screenBoard
	screenDetails
)

type createStep int

const (
	stepName createStep = iota
	stepSize
	stepToppings
	stepConfirm
)

// menuEntries are the actions on the home screen, in display order.
var menuEntries = []string{
	"Place a new order",
	"View all orders",
	"Status board",
	"Quit",
}

// Model.
type model struct {
	// Dependencies.
	eng       *engine.Engine
	orders    *store.FileStore
	statusLog *store.SQLiteStore
	logger    *slog.Logger

	// Layout.
	width, height int
	viewport      viewport.Model
	ready         bool

	// Navigation.
	screen    screen
	menuIdx   int
	status    string // one-line feedback under the header
	statusErr bool
	loading   bool

	// Order book.
	list     []domain.Order
	selected int

	// Details.
	detail         domain.Order
	history        []domain.StatusChange
	confirmAdvance bool
	confirmDelete  bool

	// Create form.
	step       createStep
	nameInput  textinput.Model
	sizeIdx    int
	toppingIdx int
	picked     []string // toppings in the order they were toggled on
}

func initialModel(eng *engine.Engine, orders *store.FileStore, statusLog *store.SQLiteStore, logger *slog.Logger) model {
	ti := textinput.New()
	ti.Placeholder = "customer name"
	ti.CharLimit = 64
	ti.Width = 32

	return model{
		eng:       eng,
		orders:    orders,
		statusLog: statusLog,
		logger:    logger,
		nameInput: ti,
		loading:   true,
	}
}

func (m model) Init() tea.Cmd {
	return m.loadOrdersCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerH := 2 // title bar + status line
		footerH := 1
		vpHeight := m.height - headerH - footerH
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.MouseWheelEnabled = true
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case ordersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.logger.Error("loading orders", "error", msg.err)
			m.setError("could not load orders: " + msg.err.Error())
		} else {
			m.list = msg.orders
			if m.selected >= len(m.list) {
				m.selected = len(m.list) - 1
			}
			if m.selected < 0 {
				m.selected = 0
			}
		}
		m.refresh()
		return m, nil

	case orderCreatedMsg:
		if msg.err != nil {
			m.setError(msg.err.Error())
			m.refresh()
			return m, nil
		}
		m.logger.Info("order created",
			"id", msg.order.ID, "customer", msg.order.CustomerName, "price", msg.order.Price)
		m.setStatus(fmt.Sprintf("Created order %s for %s (%s)",
			render.ShortID(msg.order.ID), msg.order.CustomerName, render.FormatPrice(msg.order.Price)))
		m.screen = screenList
		m.loading = true
		m.refresh()
		return m, m.loadOrdersCmd()

	case orderAdvancedMsg:
		if msg.err != nil {
			m.setError(msg.err.Error())
			m.refresh()
			return m, nil
		}
		m.logger.Info("order advanced", "id", msg.order.ID, "status", msg.order.Status)
		m.setStatus(fmt.Sprintf("Order %s is now %s", render.ShortID(msg.order.ID), msg.order.Status))
		m.detail = msg.order
		m.refresh()
		return m, tea.Batch(m.loadOrdersCmd(), m.loadHistoryCmd(msg.order.ID))

	case orderDeletedMsg:
		if msg.err != nil {
			m.setError(msg.err.Error())
			m.refresh()
			return m, nil
		}
		m.logger.Info("order deleted", "id", msg.id)
		m.setStatus(fmt.Sprintf("Deleted order %s", render.ShortID(msg.id)))
		m.screen = screenList
		m.confirmDelete = false
		m.loading = true
		m.refresh()
		return m, m.loadOrdersCmd()

	case historyLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("loading history", "order_id", msg.orderID, "error", msg.err)
			return m, nil
		}
		if m.screen == screenDetails && m.detail.ID == msg.orderID {
			m.history = msg.changes
			m.refresh()
		}
		return m, nil
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// refresh re-renders the viewport content in place.
func (m *model) refresh() {
	if m.ready {
		m.viewport.SetContent(m.renderContent())
	}
}

func (m *model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// ---------------------------------------------------------------------------
// Key handling
// ---------------------------------------------------------------------------

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The name field gets keys first; only enter and escape leave it.
	if m.screen == screenCreate && m.step == stepName {
		return m.handleCreateNameKey(msg)
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenMenu:
		return m.handleMenuKey(msg)
	case screenCreate:
		return m.handleCreateKey(msg)
	case screenList:
		return m.handleListKey(msg)
	case screenBoard:
		return m.handleBoardKey(msg)
	case screenDetails:
		return m.handleDetailsKey(msg)
	}
	return m, nil
}

func (m model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.menuIdx > 0 {
			m.menuIdx--
		}
	case "down", "j":
		if m.menuIdx < len(menuEntries)-1 {
			m.menuIdx++
		}
	case "1", "2", "3", "4":
		m.menuIdx = int(msg.String()[0] - '1')
		return m.openMenuEntry()
	case "enter":
		return m.openMenuEntry()
	}
	m.refresh()
	return m, nil
}

func (m model) openMenuEntry() (tea.Model, tea.Cmd) {
	m.setStatus("")
	switch m.menuIdx {
	case 0:
		m.startCreate()
		m.refresh()
		return m, textinput.Blink
	case 1:
		m.screen = screenList
		m.loading = true
		m.refresh()
		return m, m.loadOrdersCmd()
	case 2:
		m.screen = screenBoard
		m.loading = true
		m.refresh()
		return m, m.loadOrdersCmd()
	case 3:
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) startCreate() {
	m.screen = screenCreate
	m.step = stepName
	m.nameInput.SetValue("")
	m.nameInput.Focus()
	m.sizeIdx = 0
	m.toppingIdx = 0
	m.picked = nil
}

func (m model) handleCreateNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.screen = screenMenu
		m.nameInput.Blur()
		m.setStatus("")
		m.refresh()
		return m, nil
	case "enter":
		if strings.TrimSpace(m.nameInput.Value()) == "" {
			m.setError("customer name cannot be empty")
			m.refresh()
			return m, nil
		}
		m.setStatus("")
		m.step = stepSize
		m.nameInput.Blur()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	m.refresh()
	return m, cmd
}

func (m model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	menu := m.eng.Menu()

	switch m.step {
	case stepSize:
		switch msg.String() {
		case "esc":
			m.step = stepName
			m.nameInput.Focus()
			m.refresh()
			return m, textinput.Blink
		case "up", "k":
			if m.sizeIdx > 0 {
				m.sizeIdx--
			}
		case "down", "j":
			if m.sizeIdx < len(menu.Sizes)-1 {
				m.sizeIdx++
			}
		case "enter":
			m.step = stepToppings
		}

	case stepToppings:
		switch msg.String() {
		case "esc":
			m.step = stepSize
		case "up", "k":
			if m.toppingIdx > 0 {
				m.toppingIdx--
			}
		case "down", "j":
			if m.toppingIdx < len(menu.Toppings)-1 {
				m.toppingIdx++
			}
		case " ":
			m.togglePicked(menu.Toppings[m.toppingIdx])
		case "enter":
			m.step = stepConfirm
		}

	case stepConfirm:
		switch msg.String() {
		case "esc":
			m.step = stepToppings
		case "y", "enter":
			name := strings.TrimSpace(m.nameInput.Value())
			size := menu.Sizes[m.sizeIdx].Name
			return m, m.createOrderCmd(name, size, m.picked)
		}
	}

	m.refresh()
	return m, nil
}

// togglePicked flips one topping, keeping the pick order of the rest.
func (m *model) togglePicked(name string) {
	for i, t := range m.picked {
		if t == name {
			m.picked = append(m.picked[:i], m.picked[i+1:]...)
			return
		}
	}
	m.picked = append(m.picked, name)
}

func (m model) hasPicked(name string) bool {
	for _, t := range m.picked {
		if t == name {
			return true
		}
	}
	return false
}

func (m model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.screen = screenMenu
		m.setStatus("")
		m.refresh()
		return m, nil
	case "r":
		m.loading = true
		m.refresh()
		return m, m.loadOrdersCmd()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		m.refresh()
		m.ensureVisible()
		return m, nil
	case "down", "j":
		if m.selected < len(m.list)-1 {
			m.selected++
		}
		m.refresh()
		m.ensureVisible()
		return m, nil
	case "enter":
		if m.selected >= 0 && m.selected < len(m.list) {
			m.openDetails(m.list[m.selected])
			return m, m.loadHistoryCmd(m.detail.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m *model) openDetails(order domain.Order) {
	m.screen = screenDetails
	m.detail = order
	m.history = nil
	m.confirmAdvance = false
	m.confirmDelete = false
	m.setStatus("")
	m.refresh()
}

// ensureVisible scrolls the list viewport so the selected row is visible.
func (m *model) ensureVisible() {
	line := 1 + m.selected // one column header line above the rows
	yOff := m.viewport.YOffset
	vpH := m.viewport.Height
	if line < yOff {
		m.viewport.SetYOffset(line)
	} else if line >= yOff+vpH {
		m.viewport.SetYOffset(line - vpH + 1)
	}
}

func (m model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.screen = screenMenu
		m.setStatus("")
		m.refresh()
		return m, nil
	case "r":
		m.loading = true
		m.refresh()
		return m, m.loadOrdersCmd()
	}

	var cmd tea.Cmd
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmAdvance {
		switch msg.String() {
		case "y", "enter":
			m.confirmAdvance = false
			return m, m.advanceOrderCmd(m.detail)
		case "n", "esc":
			m.confirmAdvance = false
			m.setStatus("")
			m.refresh()
		}
		return m, nil
	}
	if m.confirmDelete {
		switch msg.String() {
		case "y":
			m.confirmDelete = false
			return m, m.deleteOrderCmd(m.detail.ID)
		case "n", "esc":
			m.confirmDelete = false
			m.setStatus("")
			m.refresh()
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.screen = screenList
		m.setStatus("")
		m.refresh()
		return m, nil
	case "a":
		if _, ok := m.eng.NextStatus(m.detail.Status); !ok {
			m.setError(fmt.Sprintf("Order is already %s", m.detail.Status))
			m.refresh()
			return m, nil
		}
		m.confirmAdvance = true
		m.refresh()
		return m, nil
	case "d":
		m.confirmDelete = true
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (m model) loadOrdersCmd() tea.Cmd {
	orders := m.orders
	return func() tea.Msg {
		list, err := orders.LoadAll(context.Background())
		return ordersLoadedMsg{orders: list, err: err}
	}
}

func (m model) createOrderCmd(name, size string, toppings []string) tea.Cmd {
	eng := m.eng
	orders := m.orders
	statusLog := m.statusLog
	logger := m.logger
	return func() tea.Msg {
		ctx := context.Background()
		order, err := eng.CreateOrder(name, size, toppings)
		if err != nil {
			return orderCreatedMsg{err: err}
		}
		if err := orders.Add(ctx, order); err != nil {
			return orderCreatedMsg{err: err}
		}
		recordChange(ctx, statusLog, logger, domain.StatusChange{
			OrderID:   order.ID,
			To:        order.Status,
			ChangedAt: order.CreatedAt,
		})
		return orderCreatedMsg{order: order}
	}
}

func (m model) advanceOrderCmd(order domain.Order) tea.Cmd {
	eng := m.eng
	orders := m.orders
	statusLog := m.statusLog
	logger := m.logger
	return func() tea.Msg {
		ctx := context.Background()
		next, ok := eng.NextStatus(order.Status)
		if !ok {
			return orderAdvancedMsg{err: fmt.Errorf("order is already %s", order.Status)}
		}
		updated, err := eng.ApplyStatusTransition(order, next)
		if err != nil {
			return orderAdvancedMsg{err: err}
		}
		found, err := orders.Update(ctx, order.ID, updated)
		if err != nil {
			return orderAdvancedMsg{err: err}
		}
		if !found {
			return orderAdvancedMsg{err: fmt.Errorf("order %s no longer exists", render.ShortID(order.ID))}
		}
		recordChange(ctx, statusLog, logger, domain.StatusChange{
			OrderID:   order.ID,
			From:      order.Status,
			To:        updated.Status,
			ChangedAt: time.Now(),
		})
		return orderAdvancedMsg{order: updated}
	}
}

func (m model) deleteOrderCmd(id string) tea.Cmd {
	orders := m.orders
	return func() tea.Msg {
		found, err := orders.DeleteByID(context.Background(), id)
		if err == nil && !found {
			err = fmt.Errorf("order %s no longer exists", render.ShortID(id))
		}
		return orderDeletedMsg{id: id, err: err}
	}
}

func (m model) loadHistoryCmd(orderID string) tea.Cmd {
	statusLog := m.statusLog
	if statusLog == nil {
		return nil
	}
	return func() tea.Msg {
		changes, err := statusLog.History(context.Background(), orderID)
		return historyLoadedMsg{orderID: orderID, changes: changes, err: err}
	}
}

// recordChange appends to the status log when it is available. History is
// best effort; a failure here must not roll back an already saved order.
func recordChange(ctx context.Context, statusLog *store.SQLiteStore, logger *slog.Logger, change domain.StatusChange) {
	if statusLog == nil {
		return
	}
	if err := statusLog.Append(ctx, change); err != nil {
		logger.Warn("failed to record status change", "order_id", change.OrderID, "error", err)
	}
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}

	headerBar := titleStyle.Render(padOrTrunc(" Pizzetta  "+screenTitle(m.screen)+" ", m.width))

	statusText := " " + m.status
	if m.loading {
		statusText = " loading..."
	}
	style := dimStyle
	if m.statusErr {
		style = errorStyle
	}
	statusBar := style.Render(padOrTrunc(statusText, m.width))

	footerBar := footerStyle.Render(padOrTrunc(" "+m.keyHints(), m.width))

	return headerBar + "\n" + statusBar + "\n" + m.viewport.View() + "\n" + footerBar
}

func screenTitle(s screen) string {
	switch s {
	case screenMenu:
		return "order tracker"
	case screenCreate:
		return "new order"
	case screenList:
		return "orders"
	case screenBoard:
		return "status board"
	case screenDetails:
		return "order details"
	}
	return ""
}

func (m model) keyHints() string {
	switch m.screen {
	case screenMenu:
		return "up/dn move  enter select  1-4 jump  q quit"
	case screenCreate:
		switch m.step {
		case stepName:
			return "enter next  esc cancel"
		case stepSize:
			return "up/dn pick  enter next  esc back"
		case stepToppings:
			return "up/dn move  space toggle  enter review  esc back"
		default:
			return "y place order  esc back"
		}
	case screenList:
		return "up/dn select  enter details  r reload  esc menu  q quit"
	case screenBoard:
		return "r reload  pgup/dn scroll  esc menu  q quit"
	case screenDetails:
		if m.confirmAdvance {
			return "y advance  n cancel"
		}
		if m.confirmDelete {
			return "y delete  n cancel"
		}
		return "a advance  d delete  esc back  q quit"
	}
	return ""
}

func (m model) renderContent() string {
	switch m.screen {
	case screenMenu:
		return m.renderMenu()
	case screenCreate:
		return m.renderCreate()
	case screenList:
		return m.renderList()
	case screenBoard:
		return m.renderBoard()
	case screenDetails:
		return m.renderDetails()
	}
	return ""
}

func (m model) renderMenu() string {
	var b strings.Builder
	b.WriteString("\n")
	for i, entry := range menuEntries {
		cursor := "  "
		style := valueStyle
		if i == m.menuIdx {
			cursor = "> "
			style = cursorStyle
		}
		b.WriteString("  " + cursor + style.Render(fmt.Sprintf("%d. %s", i+1, entry)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d orders on file", len(m.list))))
	b.WriteString("\n")
	return b.String()
}

func (m model) renderCreate() string {
	menu := m.eng.Menu()
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("  Customer: "))
	if m.step == stepName {
		b.WriteString(m.nameInput.View())
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(valueStyle.Render(strings.TrimSpace(m.nameInput.Value())))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("  Size:"))
	b.WriteString("\n")
	if m.step == stepSize {
		for i, s := range menu.Sizes {
			cursor := "   "
			style := valueStyle
			if i == m.sizeIdx {
				cursor = " > "
				style = cursorStyle
			}
			b.WriteString("  " + cursor + style.Render(fmt.Sprintf("%-8s %s", s.Name, render.FormatPrice(s.Base))))
			b.WriteString("\n")
		}
		return b.String()
	}
	size := menu.Sizes[m.sizeIdx]
	b.WriteString("     " + valueStyle.Render(fmt.Sprintf("%s (%s)", size.Name, render.FormatPrice(size.Base))))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("  Toppings (%s each):", render.FormatPrice(menu.ToppingPrice))))
	b.WriteString("\n")
	if m.step == stepToppings {
		for i, t := range menu.Toppings {
			cursor := "   "
			if i == m.toppingIdx {
				cursor = " > "
			}
			mark := "[ ]"
			style := valueStyle
			if m.hasPicked(t) {
				mark = "[x]"
				style = pickedStyle
			}
			if i == m.toppingIdx {
				style = cursorStyle
			}
			b.WriteString("  " + cursor + mark + " " + style.Render(t))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.pricePreview())
		return b.String()
	}
	b.WriteString("     " + valueStyle.Render(render.FormatToppings(m.picked)))
	b.WriteString("\n\n")

	b.WriteString(m.pricePreview())
	b.WriteString("\n")
	b.WriteString(cursorStyle.Render("  Place this order? (y/esc)"))
	b.WriteString("\n")
	return b.String()
}

func (m model) pricePreview() string {
	menu := m.eng.Menu()
	price, err := m.eng.Price(menu.Sizes[m.sizeIdx].Name, m.picked)
	if err != nil {
		return ""
	}
	return labelStyle.Render("  Total: ") + priceStyle.Render(render.FormatPrice(price)) + "\n"
}

func (m model) renderList() string {
	if m.loading && len(m.list) == 0 {
		return dimStyle.Render("  Loading...")
	}
	if len(m.list) == 0 {
		return dimStyle.Render("  No orders yet. Press esc and place one.")
	}

	var b strings.Builder
	b.WriteString(colHeaderStyle.Render("  " +
		padOrTrunc("ID", 13) +
		padOrTrunc("CUSTOMER", 19) +
		padOrTrunc("SIZE", 9) +
		padOrTrunc("TOPPINGS", 27) +
		padOrTrunc("STATUS", 11) +
		fmt.Sprintf("%9s", "PRICE")))
	b.WriteString("\n")

	for i, o := range m.list {
		hl := i == m.selected
		b.WriteString(hlStyle(dimStyle, hl).Render("  " + padOrTrunc(render.ShortID(o.ID), 13)))
		b.WriteString(hlStyle(valueStyle, hl).Render(padOrTrunc(o.CustomerName, 19)))
		b.WriteString(hlStyle(valueStyle, hl).Render(padOrTrunc(o.Size, 9)))
		b.WriteString(hlStyle(dimStyle, hl).Render(padOrTrunc(render.FormatToppings(o.Toppings), 27)))
		b.WriteString(hlStyle(statusStyle(o.Status), hl).Render(padOrTrunc(string(o.Status), 11)))
		b.WriteString(hlStyle(priceStyle, hl).Render(fmt.Sprintf("%9s", render.FormatPrice(o.Price))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderBoard() string {
	if m.loading && len(m.list) == 0 {
		return dimStyle.Render("  Loading...")
	}
	if len(m.list) == 0 {
		return dimStyle.Render("  No orders yet.")
	}

	board := render.BuildBoard(m.list)
	var b strings.Builder
	for _, g := range board.Groups {
		b.WriteString("\n")
		header := fmt.Sprintf(" %s  %d orders  %s ", g.Status, len(g.Orders), render.FormatPrice(g.Revenue))
		b.WriteString(statusStyle(g.Status).Render(header))
		lineLen := m.width - len(header) - 1
		if lineLen > 0 {
			b.WriteString(dimStyle.Render(" " + strings.Repeat("─", lineLen)))
		}
		b.WriteString("\n")
		for _, o := range g.Orders {
			b.WriteString(dimStyle.Render("   " + padOrTrunc(render.ShortID(o.ID), 13)))
			b.WriteString(valueStyle.Render(padOrTrunc(o.CustomerName, 19)))
			b.WriteString(valueStyle.Render(padOrTrunc(o.Size, 9)))
			b.WriteString(priceStyle.Render(fmt.Sprintf("%8s", render.FormatPrice(o.Price))))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(fmt.Sprintf("  Total: %d orders, %s", board.Total, render.FormatPrice(board.Revenue))))
	b.WriteString("\n")
	return b.String()
}

func (m model) renderDetails() string {
	o := m.detail
	var b strings.Builder
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %-10s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("Order", o.ID)
	row("Customer", o.CustomerName)
	row("Size", o.Size)
	row("Toppings", render.FormatToppings(o.Toppings))

	b.WriteString(labelStyle.Render(fmt.Sprintf("  %-10s", "Status")))
	b.WriteString(statusStyle(o.Status).Render(string(o.Status)))
	if next, ok := m.eng.NextStatus(o.Status); ok {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (a: advance to %s)", next)))
	}
	b.WriteString("\n")

	row("Price", render.FormatPrice(o.Price))
	row("Created", render.FormatTime(o.CreatedAt))

	if len(m.history) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("  History:"))
		b.WriteString("\n")
		for _, c := range m.history {
			b.WriteString(dimStyle.Render("    " + render.FormatTime(c.ChangedAt) + "  "))
			if c.From == "" {
				b.WriteString(valueStyle.Render("created as "))
				b.WriteString(statusStyle(c.To).Render(string(c.To)))
			} else {
				b.WriteString(statusStyle(c.From).Render(string(c.From)))
				b.WriteString(valueStyle.Render(" -> "))
				b.WriteString(statusStyle(c.To).Render(string(c.To)))
			}
			b.WriteString("\n")
		}
	}

	if m.confirmAdvance {
		if next, ok := m.eng.NextStatus(o.Status); ok {
			b.WriteString("\n")
			b.WriteString(cursorStyle.Render(fmt.Sprintf("  Advance order to %s? (y/n)", next)))
			b.WriteString("\n")
		}
	}
	if m.confirmDelete {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("  Delete order for %s? (y/n)", o.CustomerName)))
		b.WriteString("\n")
	}
	return b.String()
}

// padOrTrunc pads s with spaces to width, or truncates if longer.
func padOrTrunc(s string, width int) string {
	n := len(s)
	if n >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-n)
}

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logPath := filepath.Join(os.TempDir(), fmt.Sprintf("pizzetta-%s.log", time.Now().Format("2006-01-02")))
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := util.NewLogger(logFile, cfg.Logging.Level, cfg.Logging.Format)

	eng := engine.NewEngine(cfg.Menu.ToDomain())
	orders := store.NewFileStore(cfg.Storage.OrdersPath(), logger)

	statusLog, err := store.NewSQLiteStore(cfg.Storage.DBPath())
	if err != nil {
		logger.Warn("status history disabled", "path", cfg.Storage.DBPath(), "error", err)
		statusLog = nil
	} else {
		defer statusLog.Close()
	}

	logger.Info("starting order tracker", "orders_file", orders.Path())

	p := tea.NewProgram(
		initialModel(eng, orders, statusLog, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
