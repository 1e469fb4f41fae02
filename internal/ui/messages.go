package ui

import "github.com/timelapsetech/videocalc-db/internal/events"

type stateMsg struct {
	U events.Update
}

type changeMsg struct {
	C events.Change
}

type resultMsg struct {
	R events.Result
}

type quitMsg struct{}
