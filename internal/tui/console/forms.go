package console

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/pricing"
	"tasnim.dev/cloud-console/internal/store"
	"tasnim.dev/cloud-console/internal/tui/theme"
)

const maxVolumeGB = 16384

var (
	regions   = []string{"ap-south-1", "ap-south-2", "us-east-1", "eu-west-1"}
	zones     = []string{"a", "b", "c"}
	protocols = []string{"TCP", "UDP", "ICMP", "All"}
	schedules = []string{"Daily", "Weekly", "Manual"}

	errNoVPCs    = errors.New("create a VPC first")
	errNoVolumes = errors.New("create a volume first")
)

// staticIPPool is where new static IPs are allocated when no address is given.
var staticIPPool = netip.MustParsePrefix("203.0.113.0/24")

// openForm builds a form in the background, for forms whose choices come
// from the repository.
func openForm(build func(ctx context.Context) (*Form, error)) tea.Cmd {
	return func() tea.Msg {
		f, err := build(context.Background())
		if err != nil {
			return showToastMsg{level: ToastError, text: capitalize(err.Error())}
		}
		return PushViewMsg{View: f}
	}
}

func created(kind model.Kind, id, name string) FormResult {
	return FormResult{Kind: kind, ID: id, Message: fmt.Sprintf("%s %s created", kind.Label(), name)}
}

func preview(label string, d decimal.Decimal) string {
	return theme.MutedStyle.Render("Estimated cost: ") + theme.FilterStyle.Render(pricing.Format(d)) +
		theme.MutedStyle.Render(" "+label)
}

func vpcNames(ctx context.Context, repo store.Repository) ([]string, map[string]model.VPC, error) {
	vpcs, err := repo.VPCs().List(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(vpcs) == 0 {
		return nil, nil, errNoVPCs
	}
	names := make([]string, len(vpcs))
	byName := make(map[string]model.VPC, len(vpcs))
	for i, v := range vpcs {
		names[i] = v.Name
		byName[v.Name] = v
	}
	return names, byName, nil
}

// volumeChoices labels volumes as "name (id)". A non-empty only restricts
// the choice to that volume.
func volumeChoices(ctx context.Context, repo store.Repository, only string) ([]string, map[string]model.Volume, error) {
	vols, err := repo.Volumes().List(ctx)
	if err != nil {
		return nil, nil, err
	}
	var labels []string
	byLabel := make(map[string]model.Volume)
	for _, v := range vols {
		if only != "" && v.ID != only {
			continue
		}
		label := fmt.Sprintf("%s (%s)", v.Name, v.ID)
		labels = append(labels, label)
		byLabel[label] = v
	}
	if len(labels) == 0 {
		if only != "" {
			return nil, nil, &store.NotFoundError{Kind: model.KindVolume, ID: only}
		}
		return nil, nil, errNoVolumes
	}
	return labels, byLabel, nil
}

func ensureUniqueName[T model.Resource](ctx context.Context, c store.Collection[T], kind model.Kind, name string) error {
	items, err := c.List(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ResourceName() == name {
			return fmt.Errorf("%s %s: %w", kind.Label(), name, store.ErrExists)
		}
	}
	return nil
}

func NewVPCForm(deps Deps) *Form {
	repo := deps.Repo
	return NewForm(FormConfig{
		Title: "Create VPC",
		Fields: []FormField{
			{Key: "name", Label: "Name", Placeholder: "my-vpc", Validate: validName},
			{Key: "region", Label: "Region", Choices: regions},
			{Key: "type", Label: "Type", Choices: []string{"Free", "Paid"}},
			{Key: "description", Label: "Description", Placeholder: "optional"},
		},
		Submit: func(ctx context.Context, vals FormValues) (FormResult, error) {
			if err := ensureUniqueName(ctx, repo.VPCs(), model.KindVPC, vals["name"]); err != nil {
				return FormResult{}, err
			}
			vpc, err := repo.VPCs().Create(ctx, model.VPC{
				Name:        vals["name"],
				Region:      vals["region"],
				Type:        vals["type"],
				NetworkName: vals["name"] + "-net",
				Description: vals["description"],
			})
			if err != nil {
				return FormResult{}, err
			}
			return created(model.KindVPC, vpc.ID, vpc.Name), nil
		},
	})
}

func NewSubnetForm(deps Deps, vpcName string) tea.Cmd {
	return openForm(func(ctx context.Context) (*Form, error) { return buildSubnetForm(ctx, deps, vpcName) })
}

func buildSubnetForm(ctx context.Context, deps Deps, vpcName string) (*Form, error) {
	repo := deps.Repo
	names, byName, err := vpcNames(ctx, repo)
	if err != nil {
		return nil, err
	}
	return NewForm(FormConfig{
		Title: "Create Subnet",
		Fields: []FormField{
			{Key: "name", Label: "Name", Placeholder: "app-subnet", Validate: validName},
			{Key: "vpc", Label: "VPC", Choices: names, Value: vpcName},
			{Key: "type", Label: "Type", Choices: []string{"Private", "Public"}},
			{Key: "cidr", Label: "CIDR block", Placeholder: "10.0.1.0/24", Validate: validCIDR},
			{Key: "zone", Label: "Availability zone", Choices: zones},
			{Key: "description", Label: "Description", Placeholder: "optional"},
		},
		Submit: func(ctx context.Context, vals FormValues) (FormResult, error) {
			if err := ensureUniqueName(ctx, repo.Subnets(), model.KindSubnet, vals["name"]); err != nil {
				return FormResult{}, err
			}
			prefix, err := netip.ParsePrefix(vals["cidr"])
			if err != nil {
				return FormResult{}, err
			}
			vpc := byName[vals["vpc"]]
			s, err := repo.Subnets().Create(ctx, model.Subnet{
				Name:             vals["name"],
				VPCName:          vpc.Name,
				Type:             vals["type"],
				CIDR:             prefix.String(),
				GatewayIP:        prefix.Addr().Next().String(),
				AvailabilityZone: vpc.Region + vals["zone"],
				Description:      vals["description"],
			})
			if err != nil {
				return FormResult{}, err
			}
			return created(model.KindSubnet, s.ID, s.Name), nil
		},
	}), nil
}

func NewSecurityGroupForm(deps Deps, vpcName string) tea.Cmd {
	return openForm(func(ctx context.Context) (*Form, error) { return buildSecurityGroupForm(ctx, deps, vpcName) })
}

func buildSecurityGroupForm(ctx context.Context, deps Deps, vpcName string) (*Form, error) {
	repo := deps.Repo
	names, _, err := vpcNames(ctx, repo)
	if err != nil {
		return nil, err
	}
	return NewForm(FormConfig{
		Title: "Create Security Group",
		Fields: []FormField{
			{Key: "name", Label: "Name", Placeholder: "web-sg", Validate: validName},
			{Key: "vpc", Label: "VPC", Choices: names, Value: vpcName},
			{Key: "description", Label: "Description", Placeholder: "optional"},
		},
		Submit: func(ctx context.Context, vals FormValues) (FormResult, error) {
			if err := ensureUniqueName(ctx, repo.SecurityGroups(), model.KindSecurityGroup, vals["name"]); err != nil {
				return FormResult{}, err
			}
			sg, err := repo.SecurityGroups().Create(ctx, model.SecurityGroup{
				Name:        vals["name"],
				VPCName:     vals["vpc"],
				Description: vals["description"],
				// new groups allow all egress, like most clouds
				OutboundRules: []model.Rule{{Protocol: "All", PortRange: "All", RemoteIPPrefix: "0.0.0.0/0", Description: "Allow all outbound"}},
			})
			if err != nil {
				return FormResult{}, err
			}
			return created(model.KindSecurityGroup, sg.ID, sg.Name), nil
		},
	}), nil
}

func NewStaticIPForm(deps Deps, vpcName string) tea.Cmd {
	return openForm(func(ctx context.Context) (*Form, error) { return buildStaticIPForm(ctx, deps, vpcName) })
}

func buildStaticIPForm(ctx context.Context, deps Deps, vpcName string) (*Form, error) {
	repo := deps.Repo
	names, _, err := vpcNames(ctx, repo)
	if err != nil {
		return nil, err
	}
	return NewForm(FormConfig{
		Title: "Reserve Static IP",
		Fields: []FormField{
			{Key: "name", Label: "Name", Placeholder: "web-ip", Validate: validName},
			{Key: "vpc", Label: "VPC", Choices: names, Value: vpcName},
			{Key: "address", Label: "Address", Placeholder: "leave empty to allocate", Validate: validIP},
			{Key: "description", Label: "Description", Placeholder: "optional"},
		},
		Preview: func(FormValues) string { return preview("per month", pricing.StaticIPMonthly()) },
		Submit: func(ctx context.Context, vals FormValues) (FormResult, error) {
			if err := ensureUniqueName(ctx, repo.StaticIPs(), model.KindStaticIP, vals["name"]); err != nil {
				return FormResult{}, err
			}
			existing, err := repo.StaticIPs().List(ctx)
			if err != nil {
				return FormResult{}, err
			}
			addr := vals["address"]
			if addr == "" {
				if addr, err = allocateIP(existing); err != nil {
					return FormResult{}, err
				}
			}
			for _, ip := range existing {
				if ip.IPAddress == addr {
					return FormResult{}, fmt.Errorf("address %s: %w", addr, store.ErrExists)
				}
			}
			ip, err := repo.StaticIPs().Create(ctx, model.StaticIP{
				Name:        vals["name"],
				VPCName:     vals["vpc"],
				IPAddress:   addr,
				Description: vals["description"],
			})
			if err != nil {
				return FormResult{}, err
			}
			return created(model.KindStaticIP, ip.ID, ip.Name), nil
		},
	}), nil
}

// allocateIP returns the lowest free host address in the pool.
func allocateIP(existing []model.StaticIP) (string, error) {
	used := make(map[string]bool, len(existing))
	for _, ip := range existing {
		used[ip.IPAddress] = true
	}
	for a := staticIPPool.Addr().Next(); staticIPPool.Contains(a); a = a.Next() {
		if !used[a.String()] && a.As4()[3] != 255 {
			return a.String(), nil
		}
	}
	return "", errors.New("static IP pool exhausted")
}

// volumeIOPS is the baseline performance for a new volume.
func volumeIOPS(volumeType string, sizeGB int) int {
	if strings.EqualFold(volumeType, "HDD") {
		return min(max(sizeGB/2, 40), 500)
	}
	return min(max(sizeGB*3, 100), 16000)
}

func NewVolumeForm(deps Deps) tea.Cmd {
	return openForm(func(ctx context.Context) (*Form, error) { return buildVolumeForm(ctx, deps) })
}

func buildVolumeForm(ctx context.Context, deps Deps) (*Form, error) {
	repo := deps.Repo
	names, byName, err := vpcNames(ctx, repo)
	if err != nil {
		return nil, err
	}
	return NewForm(FormConfig{
		Title: "Create Volume",
		Fields: []FormField{
			{Key: "name", Label: "Name", Placeholder: "data-volume", Validate: validName},
			{Key: "size", Label: "Size (GB)", Value: "100", Validate: intBetween(1, maxVolumeGB)},
			{Key: "type", Label: "Type", Choices: []string{"SSD", "HDD"}},
			{Key: "vpc", Label: "VPC", Choices: names},
			{Key: "zone", Label: "Availability zone", Choices: zones},
			{Key: "description", Label: "Description", Placeholder: "optional"},
		},
		Preview: func(vals FormValues) string {
			return preview("per month", pricing.VolumeMonthly(vals["type"], vals.Int("size")))
		},
		Submit: func(ctx context.Context, vals FormValues) (FormResult, error) {
			if err := ensureUniqueName(ctx, repo.Volumes(), model.KindVolume, vals["name"]); err != nil {
				return FormResult{}, err
			}
			vpc := byName[vals["vpc"]]
			size := vals.Int("size")
			vol, err := repo.Volumes().Create(ctx, model.Volume{
				Name:             vals["name"],
				SizeGB:           size,
				Type:             vals["type"],
				VPCName:          vpc.Name,
				AvailabilityZone: vpc.Region + vals["zone"],
				IOPS:             volumeIOPS(vals["type"], size),
				Description:      vals["description"],
			})
			if err != nil {
				return FormResult{}, err
			}
			return created(model.KindVolume, vol.ID, vol.Name), nil
		},
	}), nil
}

// NewSnapshotForm snapshots a volume. volumeID fixes the source volume.
func NewSnapshotForm(deps Deps, volumeID string) tea.Cmd {
	return openForm(func(ctx context.Context) (*Form, error) { return buildSnapshotForm(ctx, deps, volumeID) })
}

func buildSnapshotForm(ctx context.Context, deps Deps, volumeID string) (*Form, error) {
	repo := deps.Repo
	labels, byLabel, err := volumeChoices(ctx, repo, volumeID)
	if err != nil {
		return nil, err
	}
	defaultName := ""
	if volumeID != "" {
		defaultName = byLabel[labels[0]].Name + "-" + deps.now().Format("20060102")
	}
	return NewForm(FormConfig{
		Title: "Create Snapshot",
		Fields: []FormField{
			{Key: "volume", Label: "Volume", Choices: labels},
			{Key: "name", Label: "Name", Value: defaultName, Placeholder: "data-snapshot", Validate: validName},
			{Key: "description", Label: "Description", Placeholder: "optional"},
		},
		Preview: func(vals FormValues) string {
			return preview("per month", pricing.SnapshotMonthly(byLabel[vals["volume"]].SizeGB))
		},
		Submit: func(ctx context.Context, vals FormValues) (FormResult, error) {
			if err := ensureUniqueName(ctx, repo.Snapshots(), model.KindSnapshot, vals["name"]); err != nil {
				return FormResult{}, err
			}
			vol := byLabel[vals["volume"]]
			s, err := repo.Snapshots().Create(ctx, model.Snapshot{
				Name:        vals["name"],
				VolumeID:    vol.ID,
				VolumeName:  vol.Name,
				SizeGB:      vol.SizeGB,
				Description: vals["description"],
			})
			if err != nil {
				return FormResult{}, err
			}
			return created(model.KindSnapshot, s.ID, s.Name), nil
		},
	}), nil
}

func NewBackupForm(deps Deps, volumeID string) tea.Cmd {
	return openForm(func(ctx context.Context) (*Form, error) { return buildBackupForm(ctx, deps, volumeID) })
}

func buildBackupForm(ctx context.Context, deps Deps, volumeID string) (*Form, error) {
	repo := deps.Repo
	labels, byLabel, err := volumeChoices(ctx, repo, volumeID)
	if err != nil {
		return nil, err
	}
	return NewForm(FormConfig{
		Title: "Create Backup",
		Fields: []FormField{
			{Key: "volume", Label: "Volume", Choices: labels},
			{Key: "name", Label: "Name", Placeholder: "data-daily", Validate: validName},
			{Key: "schedule", Label: "Schedule", Choices: schedules},
			{Key: "retention", Label: "Retention (days)", Value: "7", Validate: intBetween(1, 365)},
			{Key: "description", Label: "Description", Placeholder: "optional"},
		},
		Preview: func(vals FormValues) string {
			return preview("per month", pricing.BackupMonthly(byLabel[vals["volume"]].SizeGB, vals.Int("retention")))
		},
		Submit: func(ctx context.Context, vals FormValues) (FormResult, error) {
			if err := ensureUniqueName(ctx, repo.Backups(), model.KindBackup, vals["name"]); err != nil {
				return FormResult{}, err
			}
			vol := byLabel[vals["volume"]]
			b, err := repo.Backups().Create(ctx, model.Backup{
				Name:          vals["name"],
				VolumeID:      vol.ID,
				VolumeName:    vol.Name,
				Schedule:      vals["schedule"],
				RetentionDays: vals.Int("retention"),
				Description:   vals["description"],
			})
			if err != nil {
				return FormResult{}, err
			}
			return created(model.KindBackup, b.ID, b.Name), nil
		},
	}), nil
}

// NewRuleForm adds an inbound or outbound rule to sg.
func NewRuleForm(deps Deps, sg model.SecurityGroup, direction string) *Form {
	repo := deps.Repo
	return NewForm(FormConfig{
		Title: "Add rule to " + sg.Name,
		Fields: []FormField{
			{Key: "direction", Label: "Direction", Choices: []string{ruleInbound, ruleOutbound}, Value: direction},
			{Key: "protocol", Label: "Protocol", Choices: protocols},
			{Key: "ports", Label: "Port range", Placeholder: "443, 8000-8080 or All", Validate: validPortRange},
			{Key: "remote", Label: "Remote CIDR", Value: "0.0.0.0/0", Validate: validPrefix},
			{Key: "description", Label: "Description", Placeholder: "optional"},
		},
		Submit: func(ctx context.Context, vals FormValues) (FormResult, error) {
			current, err := repo.SecurityGroups().Get(ctx, sg.ID)
			if err != nil {
				return FormResult{}, err
			}
			ports := vals["ports"]
			if p := vals["protocol"]; p == "ICMP" || p == "All" || strings.EqualFold(ports, "all") {
				ports = "All"
			}
			rule := model.Rule{
				ID:             store.NewID("rule"),
				Protocol:       vals["protocol"],
				PortRange:      ports,
				RemoteIPPrefix: vals["remote"],
				Description:    vals["description"],
			}
			if vals["direction"] == ruleOutbound {
				current.OutboundRules = append(current.OutboundRules, rule)
			} else {
				current.InboundRules = append(current.InboundRules, rule)
			}
			if _, err := repo.SecurityGroups().Update(ctx, current); err != nil {
				return FormResult{}, err
			}
			return FormResult{
				Kind:    model.KindSecurityGroup,
				ID:      sg.ID,
				Message: fmt.Sprintf("Added %s %s rule to %s", strings.ToLower(vals["direction"]), rule.Protocol, sg.Name),
			}, nil
		},
	})
}

// NewExtendVolumeForm grows a volume. Volumes never shrink.
func NewExtendVolumeForm(deps Deps, vol model.Volume) *Form {
	repo := deps.Repo
	current := pricing.VolumeMonthly(vol.Type, vol.SizeGB)
	return NewForm(FormConfig{
		Title: fmt.Sprintf("Extend %s (currently %d GB)", vol.Name, vol.SizeGB),
		Fields: []FormField{
			{Key: "size", Label: "New size (GB)", Placeholder: fmt.Sprintf("more than %d", vol.SizeGB), Validate: intBetween(vol.SizeGB+1, maxVolumeGB)},
		},
		Preview: func(vals FormValues) string {
			size := vals.Int("size")
			if size <= vol.SizeGB {
				return ""
			}
			next := pricing.VolumeMonthly(vol.Type, size)
			return preview(fmt.Sprintf("per month (+%s)", pricing.Format(next.Sub(current))), next)
		},
		Submit: func(ctx context.Context, vals FormValues) (FormResult, error) {
			latest, err := repo.Volumes().Get(ctx, vol.ID)
			if err != nil {
				return FormResult{}, err
			}
			size := vals.Int("size")
			if size <= latest.SizeGB {
				return FormResult{}, fmt.Errorf("new size must exceed %d GB", latest.SizeGB)
			}
			latest.SizeGB = size
			latest.IOPS = max(latest.IOPS, volumeIOPS(latest.Type, size))
			if _, err := repo.Volumes().Update(ctx, latest); err != nil {
				return FormResult{}, err
			}
			return FormResult{
				Kind:    model.KindVolume,
				ID:      vol.ID,
				Message: fmt.Sprintf("Volume %s extended to %d GB", vol.Name, size),
			}, nil
		},
	})
}

// NewConnectSubnetForm connects s to one of the candidate subnets.
func NewConnectSubnetForm(deps Deps, s model.Subnet, candidates []model.Subnet) *Form {
	repo := deps.Repo
	labels := make([]string, len(candidates))
	byLabel := make(map[string]model.Subnet, len(candidates))
	for i, c := range candidates {
		labels[i] = fmt.Sprintf("%s (%s)", c.Name, c.CIDR)
		byLabel[labels[i]] = c
	}
	return NewForm(FormConfig{
		Title: "Connect " + s.Name,
		Fields: []FormField{
			{Key: "peer", Label: "Subnet", Choices: labels},
		},
		Submit: func(ctx context.Context, vals FormValues) (FormResult, error) {
			peer := byLabel[vals["peer"]]
			if err := repo.ConnectSubnets(ctx, s.ID, peer.ID); err != nil {
				return FormResult{}, err
			}
			return FormResult{
				Kind:    model.KindSubnet,
				ID:      s.ID,
				Message: fmt.Sprintf("Connected %s to %s", s.Name, peer.Name),
			}, nil
		},
	})
}
