// Package router provides screen navigation with explicit data flow.
//
// Router uses explicit input/output types for each screen and a centralized
// transition function for all routing logic. This makes data flow traceable
// and avoids hidden global state.
//
// Router is also a navigation.Navigator. Every screen it shows becomes a
// back stack entry on the navigator state it is attached to, and that state
// drives the entry's lifecycle. In tests, attach a navtesting state:
//
//	state := navtesting.New()
//	r := router.New()
//	r.OnAttach(state)
//
// # Basic Usage
//
//	// Define screen identifiers as typed constants
//	const (
//	    ScreenList router.Screen = iota
//	    ScreenDetail
//	    ScreenConfirm
//	)
//
//	r.Register(ScreenList, func(input, resume any) (any, error) {
//	    in := input.(ListInput)
//	    pos, _ := resume.(*ListResume) // nil on first visit
//	    return listScreen(in, pos), nil
//	})
//
//	r.Register(ScreenDetail, func(input, _ any) (any, error) {
//	    return detailScreen(input.(DetailInput)), nil
//	})
//
//	// Dialogs are drawn over the previous screen, which stays started.
//	r.RegisterDialog(ScreenConfirm, confirmScreen)
//
//	r.OnTransition(func(from router.Screen, result any, stack *router.Stack) (router.Screen, any) {
//	    switch from {
//	    case ScreenList:
//	        res := result.(ListResult)
//	        if res.Action == ActionSelected {
//	            return ScreenDetail, DetailInput{Item: res.Selected}
//	        }
//	        return router.ScreenExit, nil
//	    case ScreenDetail:
//	        return router.ScreenBack, nil
//	    }
//	    return router.ScreenExit, nil
//	})
//
//	r.Run(ScreenList, ListInput{Items: items})
//
// # Resume State
//
// Screen results that implement Resumer carry resume state (like scroll
// position). The router keeps it with the screen's entry while other
// screens are pushed on top, and passes it back as the resume argument
// when ScreenBack returns to that screen.
//
// Stateless screens (dialogs, confirmations) simply return results that do
// not implement Resumer.
package router
