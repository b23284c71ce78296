package vgnav_test

import (
	"fmt"

	"github.com/vugu/vgnav"
)

func Example() {

	var rt vgnav.RouteTable
	rt.MustRegister("/", "Home")
	rt.MustRegister("/poc/jobs", "PocJobs")
	rt.MustRegister("/poc/jobs/:id", "PocJobDetail")
	rt.MustRegister("/love-story", "LoveStory")

	h := vgnav.NewMemoryHistory("/")
	d := vgnav.New(&rt, h)
	defer d.Close()

	d.Subscribe(vgnav.ObserverFunc(func(s vgnav.NavigationState) {
		if s.NotFound() {
			fmt.Printf("%s: not found\n", s.Path)
			return
		}
		fmt.Printf("%s: %s %v\n", s.Path, s.ViewID(), s.Params())
	}))

	d.MustNavigateTo("/poc/jobs/42")
	d.MustNavigateTo("/poc/jobs/42/edit")
	h.Back()

	// Output:
	// /poc/jobs/42: PocJobDetail map[id:42]
	// /poc/jobs/42/edit: not found
	// /poc/jobs/42: PocJobDetail map[id:42]
}

func ExampleMatch() {

	var rt vgnav.RouteTable
	rt.MustRegister("/poc/jobs", "PocJobs")
	rt.MustRegister("/poc/:section", "PocSection")

	m, ok := vgnav.Match("/poc/jobs/", &rt)
	fmt.Println(m.ViewID, ok)

	m, ok = vgnav.Match("/poc/videos", &rt)
	fmt.Println(m.ViewID, m.Params.ByName("section"), ok)

	_, ok = vgnav.Match("/unknown/path", &rt)
	fmt.Println(ok)

	// Output:
	// PocJobs true
	// PocSection videos true
	// false
}
