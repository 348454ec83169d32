package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/pricing"
	"tasnim.dev/cloud-console/internal/store"
	"tasnim.dev/cloud-console/internal/tui/theme"
	"tasnim.dev/cloud-console/internal/utils"
)

const detailLabelWidth = 18

func newDetailBuilder() *utils.DetailBuilder {
	return utils.NewDetailBuilder(detailLabelWidth, theme.SectionStyle)
}

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(max(width, 40), max(height, 1))
	vp.MouseWheelEnabled = true
	vp.Style = lipgloss.NewStyle().Padding(0, 1)
	return vp
}

// TextDetailView is a scrollable key/value page for one record. It reloads
// the record on every refresh so edits made elsewhere show up.
type TextDetailView[T model.Resource] struct {
	kind   model.Kind
	item   T
	fetch  func(ctx context.Context, id string) (T, error)
	render func(ctx context.Context, item T) (string, error)
	del    func(item T) tea.Cmd
	copyID func(item T) string

	vp      viewport.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

type textDetailData[T any] struct {
	item    T
	content string
}

func newTextDetailView[T model.Resource](kind model.Kind, item T) *TextDetailView[T] {
	return &TextDetailView[T]{
		kind:    kind,
		item:    item,
		vp:      newViewport(80, 20),
		spinner: theme.NewSpinner(),
		loading: true,
		width:   80,
		height:  20,
	}
}

func (v *TextDetailView[T]) viewID() uintptr { return uintptr(unsafe.Pointer(v)) }

func (v *TextDetailView[T]) Title() string { return v.item.ResourceName() }

func (v *TextDetailView[T]) HelpContext() HelpContext { return HelpContextDetail }

func (v *TextDetailView[T]) Resource() (model.Kind, string) { return v.kind, v.item.ResourceID() }

func (v *TextDetailView[T]) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.load())
}

func (v *TextDetailView[T]) Refresh() tea.Cmd { return v.load() }

func (v *TextDetailView[T]) load() tea.Cmd {
	id, viewID := v.item.ResourceID(), v.viewID()
	fetch, render := v.fetch, v.render
	return func() tea.Msg {
		ctx := context.Background()
		item, err := fetch(ctx, id)
		if err != nil {
			return loadedMsg{viewID: viewID, err: err}
		}
		content, err := render(ctx, item)
		return loadedMsg{viewID: viewID, data: textDetailData[T]{item: item, content: content}, err: err}
	}
}

func (v *TextDetailView[T]) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.viewID != v.viewID() {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if d, ok := msg.data.(textDetailData[T]); ok {
			v.item = d.item
			v.vp.SetContent(d.content)
		}
		return v, nil

	case spinner.TickMsg:
		if v.loading {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "d", "D":
			if v.del != nil && !v.loading {
				return v, v.del(v.item)
			}
			return v, nil
		case "r":
			v.loading = true
			return v, tea.Batch(v.spinner.Tick, v.load())
		}
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *TextDetailView[T]) View() string {
	if v.loading {
		return loadingView(v.spinner, "Loading...")
	}
	if v.err != nil {
		return theme.ErrorStyle.Render(fmt.Sprintf("Error: %v", v.err))
	}
	return v.vp.View()
}

func (v *TextDetailView[T]) SetSize(width, height int) {
	v.width, v.height = width, height
	v.vp.Width = max(width, 40)
	v.vp.Height = max(height, 1)
}

func (v *TextDetailView[T]) CopyID() string {
	if v.copyID != nil {
		return v.copyID(v.item)
	}
	return v.item.ResourceID()
}

func NewStaticIPDetailView(deps Deps, ip model.StaticIP) *TextDetailView[model.StaticIP] {
	v := newTextDetailView(model.KindStaticIP, ip)
	v.fetch = deps.Repo.StaticIPs().Get
	v.render = func(_ context.Context, ip model.StaticIP) (string, error) {
		return renderStaticIP(ip), nil
	}
	v.del = func(ip model.StaticIP) tea.Cmd { return deleteStaticIP(deps, ip) }
	v.copyID = func(ip model.StaticIP) string { return ip.IPAddress }
	return v
}

func renderStaticIP(ip model.StaticIP) string {
	d := newDetailBuilder()
	d.Section("Static IP")
	d.Rows(
		[2]string{"Name", ip.Name},
		[2]string{"ID", ip.ID},
		[2]string{"Address", ip.IPAddress},
		[2]string{"VPC", ip.VPCName},
		[2]string{"Status", theme.RenderStatus(ip.Status)},
		[2]string{"Associated With", ip.AssociatedResource},
		[2]string{"Created", utils.TimeOrDash(ip.CreatedOn, utils.DateTime)},
		[2]string{"Description", ip.Description},
	)
	d.Blank()
	d.Section("Cost")
	d.Row("Estimate", pricing.Format(pricing.StaticIPMonthly()))
	return d.String()
}

func NewSnapshotDetailView(deps Deps, s model.Snapshot) *TextDetailView[model.Snapshot] {
	v := newTextDetailView(model.KindSnapshot, s)
	v.fetch = deps.Repo.Snapshots().Get
	v.render = func(_ context.Context, s model.Snapshot) (string, error) {
		return renderSnapshot(s), nil
	}
	v.del = func(s model.Snapshot) tea.Cmd { return deleteSnapshot(deps, s) }
	return v
}

func renderSnapshot(s model.Snapshot) string {
	d := newDetailBuilder()
	d.Section("Snapshot")
	d.Rows(
		[2]string{"Name", s.Name},
		[2]string{"ID", s.ID},
		[2]string{"Volume", fmt.Sprintf("%s (%s)", s.VolumeName, s.VolumeID)},
		[2]string{"Size", utils.SizeGB(s.SizeGB)},
		[2]string{"Status", theme.RenderStatus(s.Status)},
		[2]string{"Created", utils.TimeOrDash(s.CreatedOn, utils.DateTime)},
		[2]string{"Description", s.Description},
	)
	d.Blank()
	d.Section("Cost")
	d.Row("Estimate", pricing.Format(pricing.SnapshotMonthly(s.SizeGB)))
	return d.String()
}

func NewBackupDetailView(deps Deps, b model.Backup) *TextDetailView[model.Backup] {
	v := newTextDetailView(model.KindBackup, b)
	v.fetch = deps.Repo.Backups().Get
	v.render = func(ctx context.Context, b model.Backup) (string, error) {
		size := 0
		vol, err := deps.Repo.Volumes().Get(ctx, b.VolumeID)
		switch {
		case err == nil:
			size = vol.SizeGB
		case !errors.Is(err, store.ErrNotFound):
			return "", err
		}
		return renderBackup(b, size), nil
	}
	v.del = func(b model.Backup) tea.Cmd { return deleteBackup(deps, b) }
	return v
}

func renderBackup(b model.Backup, volumeSizeGB int) string {
	d := newDetailBuilder()
	d.Section("Backup")
	d.Rows(
		[2]string{"Name", b.Name},
		[2]string{"ID", b.ID},
		[2]string{"Volume", fmt.Sprintf("%s (%s)", b.VolumeName, b.VolumeID)},
		[2]string{"Schedule", b.Schedule},
		[2]string{"Retention", retention(b.RetentionDays)},
		[2]string{"Status", theme.RenderStatus(b.Status)},
		[2]string{"Created", utils.TimeOrDash(b.CreatedOn, utils.DateTime)},
		[2]string{"Description", b.Description},
	)
	d.Blank()
	d.Section("Cost")
	if volumeSizeGB > 0 {
		d.Row("Estimate", pricing.Format(pricing.BackupMonthly(volumeSizeGB, b.RetentionDays)))
	} else {
		d.Row("Estimate", theme.MutedStyle.Render("source volume no longer exists"))
	}
	return strings.TrimRight(d.String(), "\n")
}
