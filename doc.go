/*
Package vgnav maps URL paths to views for single-page applications and keeps
the browser's address bar and history in sync with the current view.

A RouteTable lists patterns in priority order.  Match resolves a path against
it, binding ":name" segments into Params.  A Dispatcher owns the current
NavigationState: NavigateTo resolves a path, records it with the History and
notifies observers; back/forward changes reported by the History are resolved
the same way without touching it again.

	t := &vgnav.RouteTable{}
	t.MustRegister("/", "Home")
	t.MustRegister("/poc/jobs", "PocJobs")
	t.MustRegister("/poc/jobs/:id", "PocJobDetail")

	d := vgnav.New(t, vgnav.NewBrowserHistory())
	d.Subscribe(vgnav.ObserverFunc(func(s vgnav.NavigationState) {
		// render s.ViewID() with s.Params()
	}))
	d.MustNavigateTo("/poc/jobs/42")
*/
package vgnav
