package tui

// Screen names a routable view.
type Screen string

const (
	ScreenPortfolio    Screen = "portfolio"
	ScreenTokenDetails Screen = "tokenDetails"
	ScreenAccounts     Screen = "accounts"
	ScreenSettings     Screen = "settings"
)

// Params are the route arguments, e.g. the currency id for token details.
type Params map[string]string

type Route struct {
	Screen Screen
	Params Params
}

// Navigator moves between screens.
type Navigator interface {
	Navigate(screen Screen, params Params)
	Back() bool
	Current() Route
	// Reset returns to the root screen.
	Reset()
}

// routeStack is the Navigator used by App. The root route is never popped.
type routeStack struct {
	items []Route
}

func newRouteStack(root Screen) *routeStack {
	return &routeStack{items: []Route{{Screen: root}}}
}

// Navigate pushes screen, or replaces the params when it is already on top.
func (s *routeStack) Navigate(screen Screen, params Params) {
	if top := s.Current(); top.Screen == screen {
		s.items[len(s.items)-1].Params = params
		return
	}
	s.items = append(s.items, Route{Screen: screen, Params: params})
}

func (s *routeStack) Back() bool {
	if len(s.items) <= 1 {
		return false
	}
	s.items = s.items[:len(s.items)-1]
	return true
}

func (s *routeStack) Current() Route {
	if len(s.items) == 0 {
		return Route{}
	}
	return s.items[len(s.items)-1]
}

func (s *routeStack) Len() int { return len(s.items) }

func (s *routeStack) Reset() {
	if len(s.items) > 1 {
		s.items = s.items[:1]
	}
}
