package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"skyseat-cli/model"
	"skyseat-cli/seatmap"
	"skyseat-cli/service"
	"skyseat-cli/store"
)

// cellPixels approximates one terminal cell so the layout engine's
// pixel-based sizing maps onto character columns.
const cellPixels = 8

type appState int

const (
	stateSearchForm appState = iota
	stateLoadingOffers
	stateSelectOffer
	stateLoadingSeatMap
	stateShowSeatMap
	stateError
)

// cabinFilters is the cycle order for the in-session class filter. The
// empty entry means "all cabins".
var cabinFilters = []seatmap.CabinClass{"", seatmap.Economy, seatmap.PremiumEconomy, seatmap.Business, seatmap.First}

type appModel struct {
	client     *service.Client
	normalizer *seatmap.Normalizer

	state     appState
	lastState appState
	err       error

	width  int
	height int

	inputs     []textinput.Model
	focusIndex int
	classIndex int

	offerList list.Model
	offers    model.FlightOffersResponse

	offer model.FlightOffer

	// Raw payload is retained so cabin re-filters re-run the full
	// normalize+layout pipeline instead of mutating normalized data.
	rawSeatmap  model.SeatmapData
	hasSeatmap  bool
	cabinFilter int
	normalized  seatmap.Seatmap
	plans       []seatmap.DeckPlan

	selection  seatmap.Selection
	cursorDeck int
	cursorRow  int
	cursorSeat int
	toast      string

	showNumbers bool

	spinner spinner.Model
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type offersMsg struct {
	resp model.FlightOffersResponse
	err  error
}

type seatmapMsg struct {
	data model.SeatmapData
	err  error
}

const (
	inputOrigin = iota
	inputDestination
	inputDate
	inputCount
)

func New(client *service.Client) tea.Model {
	m := appModel{
		client:      client,
		normalizer:  seatmap.NewNormalizer(seatmap.DefaultCatalog()),
		state:       stateSearchForm,
		showNumbers: true,
	}

	m.inputs = make([]textinput.Model, inputCount)
	for i := range m.inputs {
		in := textinput.New()
		in.CharLimit = 32
		switch i {
		case inputOrigin:
			in.Placeholder = "Origin (e.g. JFK)"
			in.CharLimit = 3
			in.Focus()
		case inputDestination:
			in.Placeholder = "Destination (e.g. DOH)"
			in.CharLimit = 3
		case inputDate:
			in.Placeholder = "Date (YYYY-MM-DD)"
			in.CharLimit = 10
		}
		m.inputs[i] = in
	}
	if recents, err := store.LoadRecentRoutes(); err == nil && len(recents) > 0 {
		m.inputs[inputOrigin].SetValue(recents[0].Origin)
		m.inputs[inputDestination].SetValue(recents[0].Destination)
		m.classIndex = classIndexOf(recents[0].TravelClass)
	}

	m.offerList = newList("Select Flight")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		if m.hasSeatmap {
			// Width changes recompute the whole layout wholesale.
			m.applySeatmap()
		}
		return m, nil

	case tea.KeyMsg:
		var handled bool
		m, cmd, handled := m.handleKey(msg)
		if handled {
			return m, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.state = stateError
		return m, nil

	case offersMsg:
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateSearchForm)
		}
		if len(msg.resp.Data) == 0 {
			return m, errWithOptionsCmd(errors.New("no flights found for this route and date"), stateSearchForm)
		}
		m.offers = msg.resp
		m.offerList.SetItems(buildOfferItems(msg.resp))
		m.offerList.Select(0)
		m.state = stateSelectOffer
		return m, nil

	case seatmapMsg:
		if msg.err != nil {
			if service.IsNotFound(msg.err) {
				return m, errWithOptionsCmd(errors.New("no seat map available for this flight"), stateSelectOffer)
			}
			return m, errWithOptionsCmd(msg.err, stateSelectOffer)
		}
		m.rawSeatmap = msg.data
		m.hasSeatmap = true
		m.cabinFilter = 0
		m.applySeatmap()
		m.state = stateShowSeatMap
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSearchForm:
		cmd = m.updateInputs(msg)
	case stateSelectOffer:
		m.offerList, cmd = m.offerList.Update(msg)
	}
	return m, cmd
}

func (m *appModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateSearchForm:
		return header + "\n\n" + m.searchFormView()
	case stateLoadingOffers, stateLoadingSeatMap:
		return header + "\n\n" + m.loadingView()
	case stateSelectOffer:
		return header + "\n\n" + m.offerList.View()
	case stateShowSeatMap:
		return header + "\n\n" + m.renderSeatMap()
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("SkySeat")
	sub := []string{}
	if origin := strings.ToUpper(m.inputs[inputOrigin].Value()); origin != "" {
		if dest := strings.ToUpper(m.inputs[inputDestination].Value()); dest != "" {
			sub = append(sub, fmt.Sprintf("Route: %s → %s", origin, dest))
		}
	}
	if date := m.inputs[inputDate].Value(); date != "" {
		sub = append(sub, "Date: "+date)
	}
	if m.state == stateShowSeatMap {
		if seg, ok := m.offer.FirstSegment(); ok {
			sub = append(sub, fmt.Sprintf("Flight: %s %s", model.AirlineName(m.offer.OperatingCarrier()), seg.Number))
		}
		if name := m.offers.Dictionaries.AircraftName(m.offer.AircraftCode()); name != "" {
			sub = append(sub, "Aircraft: "+name)
		}
		if filter := cabinFilters[m.cabinFilter]; filter != "" {
			sub = append(sub, "Cabin: "+string(filter))
		}
		if selected := m.selection.Selected(); selected != "" {
			sub = append(sub, "Seat: "+selected)
		}
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}
	hints := "ctrl+c quit • tab next field • c cabin class • enter search"
	if m.state == stateSelectOffer {
		hints = "ctrl+c quit • esc back • type to filter • enter view seat map"
	}
	if m.state == stateShowSeatMap {
		hints = "ctrl+c quit • esc back • arrows move • enter select seat • c cabin filter • n toggle numbers"
	}
	return title + meta + "\n" + hint(hints)
}

func (m appModel) searchFormView() string {
	var b strings.Builder
	labels := []string{"From", "To", "Date"}
	for i, in := range m.inputs {
		b.WriteString(fmt.Sprintf("%-5s %s\n", labels[i], in.View()))
	}
	class := string(cabinFilters[1:][m.classIndex])
	b.WriteString(fmt.Sprintf("\nClass %s", lipgloss.NewStyle().Bold(true).Render(class)))
	b.WriteString("\n\n" + hint("Press enter to search flights."))
	return b.String()
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		return m.goBack()
	case "n":
		if m.state == stateShowSeatMap {
			m.showNumbers = !m.showNumbers
			return m, nil, true
		}
	case "c":
		if m.state == stateSearchForm {
			m.classIndex = (m.classIndex + 1) % len(cabinFilters[1:])
			return m, nil, true
		}
		if m.state == stateShowSeatMap {
			m.cabinFilter = (m.cabinFilter + 1) % len(cabinFilters)
			m.applySeatmap()
			return m, nil, true
		}
	}

	if m.state == stateSearchForm {
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			m.setFocus((m.focusIndex + 1) % len(m.inputs))
			return m, nil, true
		case tea.KeyShiftTab, tea.KeyUp:
			m.setFocus((m.focusIndex + len(m.inputs) - 1) % len(m.inputs))
			return m, nil, true
		case tea.KeyEnter:
			return m.submitSearch()
		}
		return m, nil, false
	}

	if m.state == stateShowSeatMap {
		switch msg.String() {
		case "up", "k":
			m.moveCursor(-1, 0)
			return m, nil, true
		case "down", "j":
			m.moveCursor(1, 0)
			return m, nil, true
		case "left", "h":
			m.moveCursor(0, -1)
			return m, nil, true
		case "right", "l":
			m.moveCursor(0, 1)
			return m, nil, true
		case "enter", " ":
			m.tapCursorSeat()
			return m, nil, true
		}
	}

	if msg.Type == tea.KeyEnter {
		switch m.state {
		case stateSelectOffer:
			item, ok := m.offerList.SelectedItem().(offerItem)
			if !ok {
				return m, nil, true
			}
			m.offer = item.offer
			m.state = stateLoadingSeatMap
			return m, tea.Batch(m.fetchSeatmapCmd(item.offer), m.spinner.Tick), true
		case stateError:
			m.state = m.lastState
			return m, nil, true
		}
	}
	return m, nil, false
}

func (m *appModel) setFocus(index int) {
	m.focusIndex = index
	for i := range m.inputs {
		if i == index {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m appModel) submitSearch() (appModel, tea.Cmd, bool) {
	origin := strings.ToUpper(strings.TrimSpace(m.inputs[inputOrigin].Value()))
	dest := strings.ToUpper(strings.TrimSpace(m.inputs[inputDestination].Value()))
	date := strings.TrimSpace(m.inputs[inputDate].Value())
	if len(origin) != 3 || len(dest) != 3 {
		return m, errCmd(errors.New("origin and destination must be 3-letter airport codes")), true
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return m, errCmd(errors.New("date must be YYYY-MM-DD")), true
	}

	travelClass := string(cabinFilters[1:][m.classIndex])
	search := service.OfferSearch{
		Origin:        origin,
		Destination:   dest,
		DepartureDate: date,
		TravelClass:   travelClass,
	}
	_ = store.RememberRoute(store.RecentRoute{
		Origin:      origin,
		Destination: dest,
		Date:        date,
		TravelClass: travelClass,
	})
	m.state = stateLoadingOffers
	return m, tea.Batch(m.fetchOffersCmd(search), m.spinner.Tick), true
}

func (m appModel) goBack() (appModel, tea.Cmd, bool) {
	switch m.state {
	case stateSelectOffer:
		m.state = stateSearchForm
	case stateShowSeatMap:
		m.selection.Clear()
		m.toast = ""
		m.state = stateSelectOffer
	case stateError:
		m.state = m.lastState
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoadingOffers || m.state == stateLoadingSeatMap
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateLoadingOffers:
		title = "Searching flights"
	case stateLoadingSeatMap:
		title = "Loading seat map"
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Fetching data..."))
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.offerList.SetSize(m.width, h)
}

// applySeatmap runs the full parse+normalize+layout pipeline from the
// retained raw payload. Any previous selection is dropped because the
// seat set may have changed.
func (m *appModel) applySeatmap() {
	parsed := seatmap.Parse(m.rawSeatmap)
	m.normalized = m.normalizer.Normalize(
		parsed,
		m.offer.OperatingCarrier(),
		m.offer.AircraftCode(),
		cabinFilters[m.cabinFilter],
	)
	m.plans = seatmap.LayoutDecks(m.normalized, m.viewportPixels())
	m.selection.Clear()
	m.toast = ""
	m.cursorDeck, m.cursorRow, m.cursorSeat = 0, 0, 0
	m.clampCursor()
}

func (m appModel) viewportPixels() int {
	width := m.width
	if width <= 0 {
		width = 80
	}
	return width * cellPixels
}

// seatItems returns the seat entries of one laid-out row, skipping
// spacers.
func seatItems(row seatmap.RenderRow) []seatmap.RenderItem {
	var out []seatmap.RenderItem
	for _, item := range row.Items {
		if item.Kind == seatmap.ItemSeat {
			out = append(out, item)
		}
	}
	return out
}

func (m *appModel) moveCursor(dRow, dSeat int) {
	if len(m.plans) == 0 {
		return
	}
	if dRow != 0 {
		row := m.cursorRow + dRow
		deck := m.cursorDeck
		for {
			if row < 0 {
				if deck == 0 {
					row = 0
					break
				}
				deck--
				row = len(m.plans[deck].Plan.Rows) - 1
			} else if row >= len(m.plans[deck].Plan.Rows) {
				if deck == len(m.plans)-1 {
					row = len(m.plans[deck].Plan.Rows) - 1
					break
				}
				deck++
				row = 0
			} else {
				break
			}
		}
		m.cursorDeck, m.cursorRow = deck, row
	}
	m.cursorSeat += dSeat
	m.clampCursor()
}

func (m *appModel) clampCursor() {
	if len(m.plans) == 0 {
		return
	}
	if m.cursorDeck >= len(m.plans) {
		m.cursorDeck = len(m.plans) - 1
	}
	rows := m.plans[m.cursorDeck].Plan.Rows
	if len(rows) == 0 {
		return
	}
	if m.cursorRow >= len(rows) {
		m.cursorRow = len(rows) - 1
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
	seats := seatItems(rows[m.cursorRow])
	if len(seats) == 0 {
		return
	}
	if m.cursorSeat >= len(seats) {
		m.cursorSeat = len(seats) - 1
	}
	if m.cursorSeat < 0 {
		m.cursorSeat = 0
	}
}

func (m *appModel) cursorSeatValue() (seatmap.Seat, bool) {
	if len(m.plans) == 0 {
		return seatmap.Seat{}, false
	}
	rows := m.plans[m.cursorDeck].Plan.Rows
	if m.cursorRow >= len(rows) {
		return seatmap.Seat{}, false
	}
	seats := seatItems(rows[m.cursorRow])
	if m.cursorSeat >= len(seats) {
		return seatmap.Seat{}, false
	}
	return *seats[m.cursorSeat].Seat, true
}

// tapCursorSeat applies a tap: the info toast always fires, selection
// only changes for available seats.
func (m *appModel) tapCursorSeat() {
	seat, ok := m.cursorSeatValue()
	if !ok {
		return
	}
	m.selection.Select(seat)
	info := seatmap.DescribeSeat(seat)
	parts := []string{info.Number, string(info.Status)}
	if len(info.Characteristics) > 0 {
		parts = append(parts, strings.Join(info.Characteristics, ", "))
	}
	m.toast = strings.Join(parts, " • ")
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetFilteringEnabled(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func errWithOptionsCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err, returnState: returnState, returnStateSet: true}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingOffers:
		return stateSearchForm
	case stateLoadingSeatMap:
		return stateSelectOffer
	default:
		return state
	}
}

func classIndexOf(travelClass string) int {
	for i, c := range cabinFilters[1:] {
		if string(c) == strings.ToUpper(travelClass) {
			return i
		}
	}
	return 0
}

func (m appModel) fetchOffersCmd(search service.OfferSearch) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := m.client.SearchFlightOffers(ctx, search)
		return offersMsg{resp: resp, err: err}
	}
}

func (m appModel) fetchSeatmapCmd(offer model.FlightOffer) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := m.client.GetSeatmap(ctx, offer)
		if err != nil {
			return seatmapMsg{err: err}
		}
		if len(resp.Data) == 0 {
			return seatmapMsg{err: errors.New("no seat map available for this flight")}
		}
		return seatmapMsg{data: resp.Data[0]}
	}
}

type offerItem struct {
	offer        model.FlightOffer
	dictionaries model.Dictionaries
}

func (o offerItem) Title() string {
	seg, ok := o.offer.FirstSegment()
	if !ok {
		return "Flight"
	}
	dep := formatOfferTime(seg.Departure.At)
	arr := formatOfferTime(seg.Arrival.At)
	return fmt.Sprintf("%s %s → %s %s • %s %s", seg.Departure.IataCode, dep, seg.Arrival.IataCode, arr, seg.CarrierCode, seg.Number)
}

func (o offerItem) Description() string {
	parts := []string{model.AirlineName(o.offer.OperatingCarrier())}
	if name := o.dictionaries.AircraftName(o.offer.AircraftCode()); name != "" {
		parts = append(parts, name)
	}
	parts = append(parts, o.offer.CabinClass())
	if o.offer.Price.Total != "" {
		parts = append(parts, fmt.Sprintf("%s %s", o.offer.Price.Currency, o.offer.Price.Total))
	}
	return strings.Join(parts, " • ")
}

func (o offerItem) FilterValue() string {
	seg, _ := o.offer.FirstSegment()
	return strings.ToLower(strings.Join([]string{
		seg.CarrierCode,
		seg.Number,
		model.AirlineName(o.offer.OperatingCarrier()),
		o.offer.CabinClass(),
	}, " "))
}

func formatOfferTime(at string) string {
	if t, err := time.Parse("2006-01-02T15:04:05", at); err == nil {
		return t.Format("15:04")
	}
	return at
}

func buildOfferItems(resp model.FlightOffersResponse) []list.Item {
	items := make([]list.Item, 0, len(resp.Data))
	for _, offer := range resp.Data {
		items = append(items, offerItem{offer: offer, dictionaries: resp.Dictionaries})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return priceValue(items[i].(offerItem).offer) < priceValue(items[j].(offerItem).offer)
	})
	return items
}

// priceValue parses the API's decimal-string total for sorting. Offers
// with an unparseable price sort last.
func priceValue(offer model.FlightOffer) float64 {
	v, err := strconv.ParseFloat(offer.Price.Total, 64)
	if err != nil {
		return math.MaxFloat64
	}
	return v
}
