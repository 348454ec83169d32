package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/store"
)

// ErrUnknownPath is returned by Resolve for paths outside the console.
var ErrUnknownPath = errors.New("unknown path")

type route struct {
	section string
	kind    model.Kind
	list    func(Deps) View
	create  func(context.Context, Deps) (View, error)
	detail  func(context.Context, Deps, string) (View, error)
}

var routes = map[string]route{
	"vpc": {
		section: "networking", kind: model.KindVPC,
		list:   func(d Deps) View { return NewVPCListView(d) },
		create: func(_ context.Context, d Deps) (View, error) { return NewVPCForm(d), nil },
		detail: func(ctx context.Context, d Deps, id string) (View, error) {
			v, err := d.Repo.VPCs().Get(ctx, id)
			return NewVPCDetailView(d, v), err
		},
	},
	"subnets": {
		section: "networking", kind: model.KindSubnet,
		list: func(d Deps) View { return NewSubnetListView(d, "") },
		create: func(ctx context.Context, d Deps) (View, error) {
			return buildSubnetForm(ctx, d, "")
		},
		detail: func(ctx context.Context, d Deps, id string) (View, error) {
			s, err := d.Repo.Subnets().Get(ctx, id)
			return NewSubnetDetailView(d, s), err
		},
	},
	"security-groups": {
		section: "networking", kind: model.KindSecurityGroup,
		list: func(d Deps) View { return NewSecurityGroupListView(d, "") },
		create: func(ctx context.Context, d Deps) (View, error) {
			return buildSecurityGroupForm(ctx, d, "")
		},
		detail: func(ctx context.Context, d Deps, id string) (View, error) {
			sg, err := d.Repo.SecurityGroups().Get(ctx, id)
			return NewSecurityGroupDetailView(d, sg), err
		},
	},
	"static-ips": {
		section: "networking", kind: model.KindStaticIP,
		list: func(d Deps) View { return NewStaticIPListView(d, "") },
		create: func(ctx context.Context, d Deps) (View, error) {
			return buildStaticIPForm(ctx, d, "")
		},
		detail: func(ctx context.Context, d Deps, id string) (View, error) {
			ip, err := d.Repo.StaticIPs().Get(ctx, id)
			return NewStaticIPDetailView(d, ip), err
		},
	},
	"volumes": {
		section: "storage", kind: model.KindVolume,
		list:   func(d Deps) View { return NewVolumeListView(d) },
		create: func(ctx context.Context, d Deps) (View, error) { return buildVolumeForm(ctx, d) },
		detail: func(ctx context.Context, d Deps, id string) (View, error) {
			v, err := d.Repo.Volumes().Get(ctx, id)
			return NewVolumeDetailView(d, v), err
		},
	},
	"snapshots": {
		section: "storage", kind: model.KindSnapshot,
		list: func(d Deps) View { return NewSnapshotListView(d, "") },
		create: func(ctx context.Context, d Deps) (View, error) {
			return buildSnapshotForm(ctx, d, "")
		},
		detail: func(ctx context.Context, d Deps, id string) (View, error) {
			s, err := d.Repo.Snapshots().Get(ctx, id)
			return NewSnapshotDetailView(d, s), err
		},
	},
	"backups": {
		section: "storage", kind: model.KindBackup,
		list: func(d Deps) View { return NewBackupListView(d) },
		create: func(ctx context.Context, d Deps) (View, error) {
			return buildBackupForm(ctx, d, "")
		},
		detail: func(ctx context.Context, d Deps, id string) (View, error) {
			b, err := d.Repo.Backups().Get(ctx, id)
			return NewBackupDetailView(d, b), err
		},
	},
}

// Resolve maps a console path such as /networking/vpc/vpc-001 to the view
// stack that leads there, so Esc walks back up the hierarchy. A missing id
// resolves to the not-found page.
func Resolve(ctx context.Context, deps Deps, path string) ([]View, error) {
	stack := []View{NewRootView(deps)}
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(parts) == 0 {
		return stack, nil
	}

	var menu View
	switch parts[0] {
	case "networking":
		menu = NewNetworkingMenu(deps)
	case "storage":
		menu = NewStorageMenu(deps)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownPath, path)
	}
	stack = append(stack, menu)
	if len(parts) == 1 {
		return stack, nil
	}

	r, ok := routes[parts[1]]
	if !ok || r.section != parts[0] || len(parts) > 3 {
		return nil, fmt.Errorf("%w %q", ErrUnknownPath, path)
	}
	stack = append(stack, r.list(deps))
	if len(parts) == 2 {
		return stack, nil
	}

	if parts[2] == "create" {
		f, err := r.create(ctx, deps)
		if err != nil {
			return nil, err
		}
		return append(stack, f), nil
	}

	v, err := r.detail(ctx, deps, parts[2])
	switch {
	case errors.Is(err, store.ErrNotFound):
		return append(stack, NewNotFoundView(r.kind, parts[2])), nil
	case err != nil:
		return nil, err
	}
	return append(stack, v), nil
}
