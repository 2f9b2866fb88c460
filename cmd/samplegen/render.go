package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ekisa-team/samplegen/internal/model"
)

func renderInstances(w io.Writer, instances []*model.Instance) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"KEY", "FAMILY", "ID", "TASK", "DECODER", "STATUS", "PATH"})
	for _, i := range instances {
		status := string(i.Status)
		if i.Error != "" {
			status += ": " + i.Error
		}
		t.AppendRow(table.Row{i.Key, i.Family, i.ID, i.Task, i.Decoder, status, i.Path})
	}
	t.Render()
}

func renderFamilies(w io.Writer, registry *model.Registry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"FAMILY", "DEFAULT ID", "TASK", "DECODER"})
	for _, name := range registry.Names() {
		m, err := registry.New(name, model.Options{})
		if err != nil {
			continue
		}
		t.AppendRow(table.Row{name, m.ID(), m.Task(), m.IsDecoder()})
	}
	t.Render()
}
