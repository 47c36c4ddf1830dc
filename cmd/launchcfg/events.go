package main

import (
	"github.com/hashicorp/go-hclog"
	"github.com/openosrs/launchcfg/events"
)

// eventLogger turns resolver events into log lines.
func eventLogger(l hclog.Logger) events.EventHandler {
	return func(e events.Event) {
		switch e := e.(type) {
		case events.Trace:
			l.Trace(e.Message, "id", e.ID)
		case events.TokenSet:
			l.Debug("token set", "name", e.Name, "value", e.Value)
		case events.TemplateLoaded:
			l.Debug("template loaded", "id", e.ID, "source", e.Source, "size", e.Size)
		case events.TemplateRendered:
			l.Info("template rendered", "id", e.ID, "dest", e.Dest)
		case events.RenderFailed:
			l.Error("render failed", "id", e.ID, "error", e.Error)
		case events.ArtifactWritten:
			l.Info("artifact written", "path", e.Path, "size", e.Size)
		case events.ArtifactUnchanged:
			l.Info("artifact unchanged", "path", e.Path)
		}
	}
}
