package blocks

// InstanceID identifies a placed block inside its workspace.
type InstanceID string

// Instance is a placed block, owned by the editor's workspace.
// The parent is an id into that workspace, never an owning reference.
type Instance interface {
	ID() InstanceID
	// Kind is the definition the instance was built or last re-validated
	// against; it may be older than the registry's current entry.
	Kind() *BlockKind
	ParentID() (InstanceID, bool)
	InputsInline() bool
}

// InstanceSource looks instances up by id. Workspaces implement it.
type InstanceSource interface {
	Instance(id InstanceID) (Instance, bool)
}

// TooltipFunc computes tooltip text for the instance in ctx.
// It is called on every query and must not cache.
type TooltipFunc func(ctx TooltipContext) string

// Tooltip is either fixed text or a TooltipFunc. The zero value is the empty text.
type Tooltip struct {
	text string
	fn   TooltipFunc
}

// StaticTooltip returns a tooltip that always shows text.
func StaticTooltip(text string) Tooltip { return Tooltip{text: text} }

// DynamicTooltip returns a tooltip computed by fn on every resolution.
func DynamicTooltip(fn TooltipFunc) Tooltip { return Tooltip{fn: fn} }

// IsDynamic reports whether the tooltip is computed.
func (t Tooltip) IsDynamic() bool { return t.fn != nil }

// Text returns the fixed text of a static tooltip, or "" for a dynamic one.
func (t Tooltip) Text() string { return t.text }

// maxTooltipDepth bounds parent-to-parent tooltip delegation.
const maxTooltipDepth = 32

// TooltipResolver produces hover text for block instances.
type TooltipResolver struct {
	instances InstanceSource
}

// NewTooltipResolver returns a resolver that follows parent ids through src.
// src may be nil, in which case no instance has a parent.
func NewTooltipResolver(src InstanceSource) *TooltipResolver {
	return &TooltipResolver{instances: src}
}

// Resolve returns the tooltip for inst as of now.
func (r *TooltipResolver) Resolve(inst Instance) string {
	return r.resolve(inst, 0)
}

func (r *TooltipResolver) resolve(inst Instance, depth int) string {
	if inst == nil || inst.Kind() == nil {
		return ""
	}
	tip := inst.Kind().Tooltip()
	if !tip.IsDynamic() {
		return tip.text
	}
	if depth >= maxTooltipDepth {
		return ""
	}
	return tip.fn(TooltipContext{instance: inst, resolver: r, depth: depth})
}

// TooltipContext is what a TooltipFunc sees: the instance being hovered and a
// way to reach its current parent.
type TooltipContext struct {
	instance Instance
	resolver *TooltipResolver
	depth    int
}

func (c TooltipContext) Instance() Instance { return c.instance }

// Parent looks the parent up afresh. A block without a parent, or whose
// parent is no longer in the workspace, reports false.
func (c TooltipContext) Parent() (Instance, bool) {
	id, ok := c.instance.ParentID()
	if !ok || c.resolver.instances == nil {
		return nil, false
	}
	parent, ok := c.resolver.instances.Instance(id)
	if !ok || parent == nil {
		return nil, false
	}
	return parent, true
}

// Tooltip resolves another instance's tooltip, e.g. the parent's.
func (c TooltipContext) Tooltip(inst Instance) string {
	return c.resolver.resolve(inst, c.depth+1)
}

// InheritParentTooltip shows the parent's tooltip when the parent exists,
// renders its inputs inline and has non-empty tooltip text. Otherwise it
// shows fallback.
func InheritParentTooltip(fallback string) TooltipFunc {
	return func(ctx TooltipContext) string {
		parent, ok := ctx.Parent()
		if !ok || !parent.InputsInline() {
			return fallback
		}
		if tip := ctx.Tooltip(parent); tip != "" {
			return tip
		}
		return fallback
	}
}
