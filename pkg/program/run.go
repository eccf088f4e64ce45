package program

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/buildbarn/bb-replacer/pkg/util"
)

// Routine that can be executed as part of a program, such as the
// replay of a workload or a periodic flush of statistics.
//
// Each routine is capable of launching additional routines that either
// run as siblings, or as dependencies of the current routine and its
// siblings. Siblings are all canceled at the same time, while
// dependencies are only canceled after all of the siblings of the
// current routine have completed.
type Routine func(ctx context.Context, siblingsGroup, dependenciesGroup Group) error

// Group of routines. This interface can be used to launch additional
// routines.
type Group interface {
	Go(routine Routine)
}

// siblingsGroup is a group of routines that are all siblings with
// respect to each other.
type siblingsGroup struct {
	errorLogger         util.ErrorLogger
	groupsActive        *sync.WaitGroup
	siblingsActive      atomic.Uint32
	siblingsContext     context.Context
	dependenciesContext context.Context
	dependenciesCancel  context.CancelFunc
}

// newSiblingsGroup creates a group that contains exactly one routine.
// The caller must call runRoutine() to start it.
func newSiblingsGroup(siblingsContext context.Context, groupsActive *sync.WaitGroup, errorLogger util.ErrorLogger) *siblingsGroup {
	// Dependencies must outlive their dependents, so they don't
	// inherit cancelation from the siblings' context.
	dependenciesContext, dependenciesCancel := context.WithCancel(context.WithoutCancel(siblingsContext))
	sg := &siblingsGroup{
		errorLogger:         errorLogger,
		groupsActive:        groupsActive,
		siblingsContext:     siblingsContext,
		dependenciesContext: dependenciesContext,
		dependenciesCancel:  dependenciesCancel,
	}
	sg.siblingsActive.Store(1)
	groupsActive.Add(1)
	return sg
}

func (sg *siblingsGroup) runRoutine(routine Routine) {
	if err := routine(sg.siblingsContext, sg, dependenciesGroup{siblingsGroup: sg}); err != nil {
		sg.errorLogger.Log(err)
	}

	if sg.siblingsActive.Add(^uint32(0)) == 0 {
		// Last sibling to terminate. Dependencies may now be
		// canceled.
		sg.dependenciesCancel()
		sg.groupsActive.Done()
	}
}

func (sg *siblingsGroup) Go(routine Routine) {
	if sg.siblingsActive.Add(1) < 2 {
		panic("Attempted to create a goroutine in a group that is already completed")
	}
	go sg.runRoutine(routine)
}

type dependenciesGroup struct {
	siblingsGroup *siblingsGroup
}

func (dg dependenciesGroup) Go(routine Routine) {
	sg := dg.siblingsGroup
	if sg.siblingsActive.Load() == 0 {
		panic("Attempted to create a goroutine in a group that is already completed")
	}
	childSG := newSiblingsGroup(sg.dependenciesContext, sg.groupsActive, sg.errorLogger)
	go childSG.runRoutine(routine)
}

// run a routine and all of the routines it spawns, until all of them
// have completed. Errors returned by routines are passed on to the
// ErrorLogger, which is expected to cancel the provided context.
func run(ctx context.Context, errorLogger util.ErrorLogger, routine Routine) {
	var groupsActive sync.WaitGroup
	sg := newSiblingsGroup(ctx, &groupsActive, errorLogger)
	go sg.runRoutine(routine)
	groupsActive.Wait()
}
