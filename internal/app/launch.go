package app

import (
	"context"

	"github.com/graaaaa/vrcvisits/internal/instance"
	"github.com/graaaaa/vrcvisits/internal/visit"
)

// LaunchUsecase opens a visited instance in the client.
type LaunchUsecase interface {
	Launch(ctx context.Context, v visit.Visit, killFirst bool) error
}

// Launcher starts the client at an instance.
type Launcher interface {
	Launch(inst instance.Instance, killFirst bool) error
}

// LaunchService implements LaunchUsecase.
type LaunchService struct {
	Launcher Launcher
}

// Launch opens v's instance, stopping a running client first when killFirst is set.
func (s LaunchService) Launch(ctx context.Context, v visit.Visit, killFirst bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Launcher.Launch(v.Instance, killFirst)
}
