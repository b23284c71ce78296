package vgnav

import (
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/vugu/vugu/js"
)

// ErrNotInBrowser is returned by BrowserHistory when there is no
// browser (js) environment, e.g. when running tests on the host.
var ErrNotInBrowser = errors.New("not in browser (js) environment")

// BrowserHistory implements History on top of window.history and
// window.location.  A single popstate listener is attached while at least one
// OnChange listener is registered.
type BrowserHistory struct {
	useFragment bool

	mu           sync.Mutex
	listeners    subscriptions[func(string)]
	popStateFunc js.Func
	listening    bool // popStateFunc is attached
}

// NewBrowserHistory returns a BrowserHistory using the URL path.
func NewBrowserHistory() *BrowserHistory {
	return &BrowserHistory{}
}

// UseFragment sets the fragment flag which if set means the fragment part of the URL (after the "#")
// is used as the path and query string.  This can be useful for compatibility in applications which are
// served statically and do not have the ability to handle URL routing on the server side.
// This option is disabled by default.  If used it should be set immediately after creation.  Changing it
// after navigation may have undefined results.
func (h *BrowserHistory) UseFragment(v bool) {
	h.useFragment = v
}

// Push implements History using window.history.pushState().
func (h *BrowserHistory) Push(pathEtc string) error {
	return h.callHistory("pushState", pathEtc)
}

// Replace implements History using window.history.replaceState().
func (h *BrowserHistory) Replace(pathEtc string) error {
	return h.callHistory("replaceState", pathEtc)
}

func (h *BrowserHistory) callHistory(method, pathEtc string) error {

	g := js.Global()
	if !g.Truthy() {
		return ErrNotInBrowser
	}

	pqv := pathEtc
	if h.useFragment {
		pqv = "#" + pathEtc
	}
	g.Get("window").Get("history").Call(method, nil, "", pqv)

	return nil
}

// CurrentPath implements History.  Outside a browser it returns "/".
func (h *BrowserHistory) CurrentPath() string {

	u, err := h.readBrowserURL()
	if err != nil {
		return "/"
	}

	ret := u.EscapedPath()
	if ret == "" {
		ret = "/"
	}
	if u.RawQuery != "" {
		ret += "?" + u.RawQuery
	}
	return ret
}

// OnChange implements History.  Outside a browser the listener is recorded
// but never called since no popstate events occur.
func (h *BrowserHistory) OnChange(listener func(pathEtc string)) (unsubscribe func()) {

	h.mu.Lock()
	defer h.mu.Unlock()

	remove := h.listeners.add(listener)

	if !h.listening {
		// error means no browser, there is nothing to listen to
		_ = h.addPopStateListener(func(this js.Value, args []js.Value) interface{} {
			p := h.CurrentPath()
			for _, l := range h.listeners.snapshot() {
				l(p)
			}
			return nil
		})
	}

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		remove()
		if h.listeners.len() == 0 && h.listening {
			_ = h.removePopStateListener()
		}
	}
}

func (h *BrowserHistory) readBrowserURL() (*url.URL, error) {

	g := js.Global()
	if !g.Truthy() {
		return nil, ErrNotInBrowser
	}

	var locstr string
	if h.useFragment {
		locstr = strings.TrimPrefix(g.Get("window").Get("location").Get("hash").String(), "#")
	} else {
		locstr = g.Get("window").Get("location").Call("toString").String()
	}

	return url.Parse(locstr)
}

func (h *BrowserHistory) removePopStateListener() error {

	g := js.Global()
	if !g.Truthy() {
		return ErrNotInBrowser
	}

	if !h.listening {
		return errors.New("popstate listener not set")
	}

	g.Get("window").Call("removeEventListener", "popstate", h.popStateFunc)

	h.popStateFunc.Release()
	h.popStateFunc = js.Func{}
	h.listening = false

	return nil
}

func (h *BrowserHistory) addPopStateListener(f func(this js.Value, args []js.Value) interface{}) error {

	g := js.Global()
	if !g.Truthy() {
		return ErrNotInBrowser
	}

	if h.listening {
		return errors.New("popstate listener already set")
	}

	jf := js.FuncOf(f)

	g.Get("window").Call("addEventListener", "popstate", jf)

	h.popStateFunc = jf
	h.listening = true

	return nil

}
