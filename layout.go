package lumen

// MinDimension is the fallback extent for a node whose size cannot be
// derived from children, bounds or an explicit spec.
var MinDimension = Px(10.0)

// Layout is the layout spec an author attaches to a node.
type Layout struct {
	Direction       Direction
	Wrap            bool
	Position        Edges
	PositionType    PositionType
	AxisAlignment   Alignment
	CrossAlignment  Alignment
	Margin          Edges
	Padding         Edges
	Size            Size
	MaxSize         Size
	MinSize         Size
	FlexGrow        float64
	ZIndex          *float64
	ZIndexIncrement float64
	Debug           string
}

// DefaultLayout returns the layout every node starts from: relative row
// placement, zero margins and padding, flex-grow 1, 10px minimum size.
func DefaultLayout() Layout {
	return Layout{
		Margin:   EdgesZero,
		Padding:  EdgesZero,
		MinSize:  Size{MinDimension, MinDimension},
		FlexGrow: 1.0,
	}
}

func (l Layout) Hash(h *Hasher) {
	h.WriteUint64(uint64(l.Direction))
	h.WriteBool(l.Wrap)
	l.Position.Hash(h)
	h.WriteUint64(uint64(l.PositionType))
	h.WriteUint64(uint64(l.AxisAlignment))
	h.WriteUint64(uint64(l.CrossAlignment))
	l.Margin.Hash(h)
	l.Padding.Hash(h)
	l.Size.Hash(h)
	l.MaxSize.Hash(h)
	l.MinSize.Hash(h)
	h.WriteFloat(l.FlexGrow)
	if l.ZIndex != nil {
		h.WriteFloat(*l.ZIndex)
	}
	h.WriteFloat(l.ZIndexIncrement)
}

// LayoutType records how a node's main axis extent was determined, so later
// passes know whether it may still change.
type LayoutType uint8

const (
	LayoutAuto LayoutType = iota
	LayoutFixed
	LayoutPercent
	LayoutFlex
	LayoutWrapping
	LayoutIntrinsic
)

func (t LayoutType) String() string {
	switch t {
	case LayoutFixed:
		return "Fixed"
	case LayoutPercent:
		return "Percent"
	case LayoutFlex:
		return "Flex"
	case LayoutWrapping:
		return "Wrapping"
	case LayoutIntrinsic:
		return "Intrinsic"
	default:
		return "Auto"
	}
}

// LayoutResult is the progressively resolved geometry of a node. Direction
// is the parent's, since positions are expressed on the parent's axes.
type LayoutResult struct {
	Size           Size
	Position       Edges
	Direction      Direction
	MainLayoutType LayoutType
	MainResolved   bool
}
