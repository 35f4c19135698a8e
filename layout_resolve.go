package lumen

// Flexbox-like layout resolution. Every Node carries a Layout spec, and
// this file assigns it a LayoutResult: an absolute position and size in
// logical pixels. Resolution runs twice per frame so percentages whose
// relative base was only known at the end of the first pass can resolve.

func dimPtr(d Dimension) *float64 {
	if v, ok := d.MaybePx(); ok {
		return &v
	}
	return nil
}

func firstPtr(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}

// bestAvailableDimension picks the best constraint for a child's bounds:
// the child's own resolved size minus padding, else the parent's inner
// size, else the ancestor bounds. Never exceeds boundsDim.
func bestAvailableDimension(childDim, innerDim, boundsDim, padStart, padEnd Dimension) Dimension {
	if childDim.Resolved() {
		return childDim.Sub(padStart).Sub(padEnd).Max(Px(0)).Min(boundsDim)
	}
	if innerDim.Resolved() {
		return innerDim.Min(boundsDim)
	}
	return boundsDim
}

// boundsSizeFor derives the bounds passed down to this node from its
// parent's inner size, the ancestor bounds, and the remaining main-axis
// space at this node's position.
func (n *Node) boundsSizeFor(parentInnerSize, parentBoundsSize Size, remainingSpaceMain Dimension) Size {
	dir := n.Layout.Direction
	padding := n.Layout.Padding.MaybeResolve(parentBoundsSize)

	var mainDim Dimension
	if !parentInnerSize.Main(dir).Resolved() {
		mainDim = remainingSpaceMain
	} else {
		mainDim = bestAvailableDimension(
			n.LayoutResult.Size.Main(dir),
			parentInnerSize.Main(dir),
			parentBoundsSize.Main(dir).Min(remainingSpaceMain),
			padding.Main(dir, n.Layout.AxisAlignment),
			padding.MainReverse(dir, n.Layout.AxisAlignment),
		)
	}

	return dir.Size(
		mainDim,
		bestAvailableDimension(
			n.LayoutResult.Size.Cross(dir),
			parentInnerSize.Cross(dir),
			parentBoundsSize.Cross(dir),
			padding.Cross(dir, n.Layout.CrossAlignment),
			padding.CrossReverse(dir, n.Layout.CrossAlignment),
		),
	)
}

func (n *Node) resolveChildSizes(boundsSize Size, caches *Caches, scaleFactor float64, finalPass bool) {
	size := n.Layout.Size
	if n.LayoutResult.MainResolved {
		size = n.Layout.Size.MostSpecific(n.LayoutResult.Size)
	}

	innerSize := size.MinusEdges(n.Layout.Padding.MaybeResolve(boundsSize))
	if n.scrollX() != nil {
		innerSize.Width = Auto
	}
	if n.scrollY() != nil {
		innerSize.Height = Auto
	}

	dir := n.Layout.Direction
	axisAlign := n.Layout.AxisAlignment

	// The main-axis allowance is always the parent's bounds constraint; the
	// inner size may come from a previous pass and exceed it.
	var maxAvailable Dimension
	if boundsSize.Main(dir).Resolved() {
		padding := n.Layout.Padding.MaybeResolve(boundsSize)
		startPad := padding.Main(dir, axisAlign)
		endPad := padding.MainReverse(dir, axisAlign)
		maxAvailable = boundsSize.Main(dir).Sub(startPad).Sub(endPad).Max(Px(0))
	} else if innerSize.Main(dir).Resolved() {
		maxAvailable = innerSize.Main(dir)
	} else {
		maxAvailable = Auto
	}

	mainRemaining := maxAvailable.Px()
	maxCrossSize := 0.0
	unresolved := 0
	unresolvedFlexGrow := 0.0

	for _, child := range n.Children {
		child.LayoutResult.Direction = dir

		// Stretch only promotes an unresolved cross size.
		if n.Layout.CrossAlignment == Stretch && !child.LayoutResult.Size.Cross(dir).Resolved() {
			child.LayoutResult.Size.SetCross(dir, Pct(100))
		}

		if Debug && child.Layout.Debug != "" {
			debugf("%s resolving child size of %s: spec %v, result %v, inner %v",
				passName(finalPass), child.Layout.Debug,
				child.Layout.Size, child.LayoutResult.Size, innerSize)
		}

		childMargin := child.Layout.Margin.MaybeResolve(innerSize)

		resolvedSize := child.Layout.Size.
			MoreSpecific(child.LayoutResult.Size.PlusEdges(childMargin)).
			MaybeResolve(innerSize)

		if child.Layout.Size.Main(dir).Resolved() {
			// An explicit pixel size is content size; margins stay
			// outside it.
			child.LayoutResult.MainResolved = true
			child.LayoutResult.MainLayoutType = LayoutFixed
			child.LayoutResult.Size = resolvedSize
		} else {
			if child.Layout.Size.Main(dir).IsPct() {
				child.LayoutResult.MainLayoutType = LayoutPercent
			}
			// Computed sizes are outer sizes; make room for margins.
			child.LayoutResult.Size = resolvedSize.MinusEdges(childMargin)
		}

		if n.Layout.AxisAlignment == Stretch &&
			child.Layout.Size.Main(dir).IsAuto() &&
			child.Layout.FlexGrow != 0 {
			// Resolved by flex distribution in the second walk.
			child.LayoutResult.Size.SetMain(dir, Auto)
			child.LayoutResult.MainLayoutType = LayoutFlex
		} else {
			child.Layout.FlexGrow = 0
		}

		if !child.LayoutResult.Size.Resolved() {
			fillBoundsSize := innerSize.MostSpecific(boundsSize)
			fillBoundsInner := fillBoundsSize.MinusEdges(child.Layout.Margin.MaybeResolve(fillBoundsSize))
			w, h := child.Component.FillBounds(
				dimPtr(child.LayoutResult.Size.Width),
				dimPtr(child.LayoutResult.Size.Height),
				firstPtr(dimPtr(fillBoundsInner.Width), dimPtr(n.Layout.MaxSize.Width)),
				firstPtr(dimPtr(fillBoundsInner.Height), dimPtr(n.Layout.MaxSize.Height)),
				caches,
				scaleFactor,
			)
			if w != nil {
				child.LayoutResult.Size.Width = Px(*w)
			}
			if h != nil {
				child.LayoutResult.Size.Height = Px(*h)
			}
			if child.LayoutResult.Size.Main(dir).Resolved() {
				child.LayoutResult.MainResolved = true
				child.LayoutResult.MainLayoutType = LayoutIntrinsic
			}
		}

		if cross := child.LayoutResult.Size.Cross(dir).Px(); cross > maxCrossSize {
			maxCrossSize = cross
		}

		if x, ok := child.LayoutResult.Size.Main(dir).MaybePx(); ok && child.LayoutResult.MainResolved {
			if !n.Layout.Wrap {
				// Wrap rows all start from the same main-axis
				// allowance, so resolved children don't consume it.
				mainRemaining -= x + childMargin.MainTotal(dir).Px()
			}
		} else {
			unresolved++
			unresolvedFlexGrow += child.Layout.FlexGrow
		}
	}
	if mainRemaining < 0 {
		mainRemaining = 0
	}

	currentMainRemaining := mainRemaining

	for _, child := range n.Children {
		mainRemainingBefore := currentMainRemaining

		if n.Layout.AxisAlignment == Stretch &&
			!child.LayoutResult.Size.Main(dir).Resolved() &&
			child.Layout.FlexGrow != 0 {
			margin := child.Layout.Margin.MaybeResolve(innerSize)
			flexRatio := child.Layout.FlexGrow / unresolvedFlexGrow
			share := mainRemaining * flexRatio
			child.LayoutResult.Size.SetMain(dir, Px(share).Sub(margin.MainTotal(dir)))
			currentMainRemaining -= share
		} else if unresolved == 1 &&
			!child.Layout.Size.Main(dir).Resolved() &&
			child.Layout.Wrap &&
			mainRemaining > 0 {
			// A single unresolved wrapping child takes all the
			// remaining space; its siblings are all resolved.
			margin := child.Layout.Margin.MaybeResolve(innerSize)
			marginMain := margin.Main(dir, Start).Px() + margin.Main(dir, End).Px()
			child.LayoutResult.Size.SetMain(dir, Px(mainRemaining-marginMain))
			currentMainRemaining = 0
			child.LayoutResult.MainLayoutType = LayoutWrapping
		}

		// Cross percent of the largest sibling, non-wrap only.
		if (child.Layout.Size.Cross(dir).IsPct() || child.LayoutResult.Size.Cross(dir).IsPct()) &&
			!child.LayoutResult.Size.Cross(dir).Resolved() &&
			!n.Layout.Wrap &&
			maxCrossSize > 0 {
			var maxCross Size
			maxCross.SetCross(dir, Px(maxCrossSize))
			margin := child.Layout.Margin.MaybeResolve(innerSize)
			size := child.Layout.Size.
				MostSpecific(child.LayoutResult.Size).
				MaybeResolve(maxCross)
			child.LayoutResult.Size = size.MinusEdges(margin)
			currentMainRemaining -= size.Main(dir).Px()
		}

		// Clamp before recursing; the child may grow through its own
		// content, so re-clamp after.
		child.LayoutResult.Size = child.LayoutResult.Size.Min(child.Layout.MaxSize)
		child.resolveLayout(
			child.boundsSizeFor(innerSize, boundsSize, Px(mainRemainingBefore)),
			caches,
			scaleFactor,
			finalPass,
		)
		child.LayoutResult.Size = child.LayoutResult.Size.Min(child.Layout.MaxSize)

		if currentMainRemaining < 0 {
			currentMainRemaining = 0
		}
	}
}

// resolvePosition reconciles the four position edges against the node's
// size, converting bottom/right-relative offsets into top/left form.
func (n *Node) resolvePosition(bounds Size) {
	pos := n.LayoutResult.Position
	size := n.LayoutResult.Size

	if top, ok := pos.Top.MaybePx(); ok {
		n.LayoutResult.Position.Bottom = Px(top + size.Height.Px())
	} else if bottom, ok := pos.Bottom.MaybePx(); ok {
		n.LayoutResult.Position.Top = Px(bounds.Height.Px() - bottom - size.Height.Px())
		n.LayoutResult.Position.Bottom = Px(bounds.Height.Px() - bottom)
	} else {
		n.LayoutResult.Position.Top = Px(0)
	}

	if left, ok := pos.Left.MaybePx(); ok {
		n.LayoutResult.Position.Right = Px(left + size.Width.Px())
	} else if right, ok := pos.Right.MaybePx(); ok {
		n.LayoutResult.Position.Left = Px(bounds.Width.Px() - right - size.Width.Px())
		n.LayoutResult.Position.Right = Px(bounds.Width.Px() - right)
	} else {
		n.LayoutResult.Position.Left = Px(0)
	}
}

type rowLength struct {
	length float64
	count  int
}

// setChildrenPosition walks children in order (reversed for End alignment)
// accumulating main-axis position, wrapping when the next child would
// exceed a resolved wrap bound, and returns the combined children size.
func (n *Node) setChildrenPosition(boundsSize Size) Size {
	dir := n.Layout.Direction
	size := n.Layout.Size.MostSpecific(n.LayoutResult.Size)
	axisAlign := n.Layout.AxisAlignment
	crossAlign := n.Layout.CrossAlignment

	mainStartPadding := n.Layout.Padding.Main(dir, axisAlign).MaybeResolve(size.Main(dir)).Px()
	mainEndPadding := n.Layout.Padding.MainReverse(dir, axisAlign).MaybeResolve(size.Main(dir)).Px()

	mainPos := mainStartPadding
	crossPos := n.Layout.Padding.Cross(dir, crossAlign).MaybeResolve(size.Cross(dir)).Px()
	maxCrossSize := 0.0
	var rowLengths []rowLength
	rowElements := 0

	children := n.Children
	if axisAlign == End {
		children = make([]*Node, len(n.Children))
		for i := range n.Children {
			children[i] = n.Children[len(n.Children)-1-i]
		}
	}

	for _, child := range children {
		margin := child.Layout.Margin.MaybeResolve(size)
		childOuterSize := child.LayoutResult.Size.PlusEdges(margin)

		// Wrapping needs a resolved bound; fall back to the parent's
		// bounds when the node's own size is still auto.
		wrapSize := Auto
		if size.Main(dir).Resolved() {
			wrapSize = size.Main(dir)
		} else if n.Layout.Wrap && boundsSize.Main(dir).Resolved() {
			wrapSize = boundsSize.Main(dir)
		}
		if n.Layout.Wrap &&
			wrapSize.Resolved() &&
			child.Layout.PositionType != Absolute &&
			mainPos+mainEndPadding+childOuterSize.Main(dir).Px() > wrapSize.Px() &&
			mainPos > mainStartPadding {
			rowLengths = append(rowLengths, rowLength{mainPos, rowElements})
			mainPos = mainStartPadding
			crossPos += maxCrossSize
			maxCrossSize = 0
			rowElements = 0
		}

		if child.Layout.PositionType == Relative {
			child.LayoutResult.Position = dir.Edges(Px(mainPos), Px(crossPos), axisAlign, crossAlign)
			addEdgeMain(&child.LayoutResult.Position, dir, axisAlign, margin.Main(dir, axisAlign))
			addEdgeCross(&child.LayoutResult.Position, dir, crossAlign, margin.Cross(dir, crossAlign))

			child.resolvePosition(size)

			mainPos += childOuterSize.Main(dir).Px()
			rowElements++
			if cross := childOuterSize.Cross(dir).Px(); cross > maxCrossSize {
				maxCrossSize = cross
			}
		} else {
			child.LayoutResult.Position = child.Layout.Position.MostSpecific(
				dir.Edges(Px(mainPos), Px(crossPos), axisAlign, crossAlign))
			addEdgeMain(&child.LayoutResult.Position, dir, axisAlign, margin.Main(dir, axisAlign))
			addEdgeCross(&child.LayoutResult.Position, dir, crossAlign, margin.Cross(dir, crossAlign))

			child.resolvePosition(size)
		}

		if Debug && child.Layout.Debug != "" {
			debugf("positioned %s at %+v", child.Layout.Debug, child.LayoutResult.Position)
		}
	}

	rowLengths = append(rowLengths, rowLength{mainPos, rowElements})

	var childrenSize Size
	if len(n.Children) > 0 {
		mainSize := mainPos
		if n.Layout.Wrap && len(rowLengths) > 0 {
			mainSize = 0
			for _, r := range rowLengths {
				if r.length > mainSize {
					mainSize = r.length
				}
			}
		}
		crossSize := crossPos + maxCrossSize
		childrenSize = dir.Size(Px(mainSize), Px(crossSize))
	}
	childrenSize.SetMain(dir, childrenSize.Main(dir).Add(n.Layout.Padding.MainReverse(dir, axisAlign)))
	childrenSize.SetCross(dir, childrenSize.Cross(dir).Add(n.Layout.Padding.CrossReverse(dir, crossAlign)))

	if axisAlign == Center || crossAlign == Center {
		// Second pass now that the container size is known.
		mainOffset := 0.0
		if axisAlign == Center && size.Main(dir).Resolved() {
			// Accurate for unwrapped children; wrapped rows recompute
			// per row in the loop.
			mainOffset = (size.Main(dir).Px() - childrenSize.Main(dir).Px()) / 2
		}
		crossSize := childrenSize.Cross(dir).Px()
		if size.Cross(dir).Resolved() {
			crossSize = size.Cross(dir).Px()
		}

		positionedInRow := 0
		currentRow := 0
		for _, child := range n.Children {
			if child.Layout.PositionType == Absolute {
				continue
			}
			offset := mainOffset
			if n.Layout.Wrap {
				if positionedInRow >= rowLengths[currentRow].count {
					positionedInRow = 0
					currentRow++
				}
				offset = (size.Main(dir).Px() - (rowLengths[currentRow].length + mainEndPadding)) / 2
			}
			addEdgeMain(&child.LayoutResult.Position, dir, axisAlign, Px(offset))

			if crossAlign == Center {
				if len(rowLengths) > 1 {
					addEdgeCross(&child.LayoutResult.Position, dir, crossAlign,
						Px((crossSize-childrenSize.Cross(dir).Px())/2))
				} else {
					setEdgeCross(&child.LayoutResult.Position, dir, crossAlign,
						Px((crossSize-child.LayoutResult.Size.Cross(dir).Px())/2))
				}
			}

			child.resolvePosition(size)
			positionedInRow++
		}
	}

	return childrenSize
}

func addEdgeMain(e *Edges, dir Direction, align Alignment, d Dimension) {
	e.SetMain(dir, align, e.Main(dir, align).Add(d))
}

func addEdgeCross(e *Edges, dir Direction, align Alignment, d Dimension) {
	e.SetCross(dir, align, e.Cross(dir, align).Add(d))
}

func setEdgeCross(e *Edges, dir Direction, align Alignment, d Dimension) {
	e.SetCross(dir, align, d)
}

// resolveSize makes sure the node has a size, taken from its children, its
// bounds, its min size, or the engine minimum, in that order.
func (n *Node) resolveSize(childrenSize Size, finalPass bool) {
	if n.Layout.Size.Main(n.LayoutResult.Direction).Resolved() {
		// Root nodes can carry a fixed size; children had this set
		// during resolveChildSizes.
		n.LayoutResult.MainLayoutType = LayoutFixed
	}

	size := n.Layout.Size.MostSpecific(n.LayoutResult.Size)

	minSize := n.Layout.MinSize
	dir := n.Layout.Direction
	if finalPass && n.LayoutResult.MainLayoutType == LayoutAuto {
		size.SetMain(n.LayoutResult.Direction, Auto)
	}

	// Wrapping containers whose auto-sized axis was temporarily resolved
	// may shrink back to their children's extent.
	allowShrinkMain := n.Layout.Wrap &&
		n.Layout.Size.Main(dir).IsAuto() &&
		size.Main(dir).Resolved() &&
		childrenSize.Main(dir).Resolved() &&
		childrenSize.Main(dir).Px() < size.Main(dir).Px()

	allowShrinkCross := n.Layout.Wrap &&
		n.Layout.Size.Cross(dir).IsAuto() &&
		size.Cross(dir).Resolved() &&
		childrenSize.Cross(dir).Resolved() &&
		childrenSize.Cross(dir).Px() < size.Cross(dir).Px()

	if !size.Width.Resolved() || size.Width.Px() < 0 {
		if n.scrollX() == nil && childrenSize.Width.Resolved() {
			size.Width = childrenSize.Width
		} else if minSize.Width.Resolved() {
			size.Width = minSize.Width
		} else {
			size.Width = MinDimension
		}
	} else if allowShrinkMain && dir == Row && n.scrollX() == nil && childrenSize.Width.Resolved() {
		size.Width = childrenSize.Width
	}

	if !size.Height.Resolved() || size.Height.Px() < 0 {
		if n.scrollY() == nil && childrenSize.Height.Resolved() {
			size.Height = childrenSize.Height
		} else if minSize.Height.Resolved() {
			size.Height = minSize.Height
		} else {
			size.Height = MinDimension
		}
	} else if ((allowShrinkMain && dir == Column) || (allowShrinkCross && dir == Row)) &&
		n.scrollY() == nil && childrenSize.Height.Resolved() {
		size.Height = childrenSize.Height
	}

	// Only auto-sized axes are clamped; an explicit spec wins.
	if !n.Layout.Size.Width.Resolved() {
		size.Width = size.Width.Max(n.Layout.MinSize.Width).Min(n.Layout.MaxSize.Width)
	}
	if !n.Layout.Size.Height.Resolved() {
		size.Height = size.Height.Max(n.Layout.MinSize.Height).Min(n.Layout.MaxSize.Height)
	}

	n.LayoutResult.Size = size
}

// setInnerScale records the content extent of a scroll container; it is at
// least the node's own size on each scrolling axis.
func (n *Node) setInnerScale(childrenSize Size) {
	if !n.scrollable() {
		return
	}
	innerWidth := n.LayoutResult.Size.Width
	if n.scrollX() != nil {
		innerWidth = childrenSize.Width.Max(n.LayoutResult.Size.Width)
	}
	innerHeight := n.LayoutResult.Size.Height
	if n.scrollY() != nil {
		innerHeight = childrenSize.Height.Max(n.LayoutResult.Size.Height)
	}
	n.InnerScale = &Scale{Width: innerWidth.Px(), Height: innerHeight.Px()}
}

func passName(finalPass bool) string {
	if finalPass {
		return "final pass"
	}
	return "first pass"
}

// resolveLayout sizes children, positions them, then derives this node's
// own size and inner scale. For each axis the node either has a pixel
// size, or its parent does at resolution time; an Auto axis takes its size
// from its children and falls back to min size.
func (n *Node) resolveLayout(boundsSize Size, caches *Caches, scaleFactor float64, finalPass bool) {
	if Debug && n.Layout.Debug != "" {
		debugf("%s laying out %s in bounds %v", passName(finalPass), n.Layout.Debug, boundsSize)
	}

	n.resolveChildSizes(boundsSize, caches, scaleFactor, finalPass)
	childrenSize := n.setChildrenPosition(boundsSize)
	n.resolveSize(childrenSize, finalPass)
	n.setInnerScale(childrenSize)

	if !finalPass && n.Layout.FlexGrow == 0 && !n.Layout.Wrap {
		resolved := n.Layout.Size.Main(n.Layout.Direction).Resolved()
		if !resolved {
			resolved = true
			for _, c := range n.Children {
				if !c.LayoutResult.MainResolved {
					resolved = false
					break
				}
			}
		}
		if resolved {
			n.LayoutResult.MainResolved = true
		}
	}

	if Debug && n.Layout.Debug != "" {
		debugf("%s layout result of %s: %v %+v", passName(finalPass),
			n.Layout.Debug, n.LayoutResult.Size, n.LayoutResult.Position)
	}
}

// CalculateLayout runs the two-pass resolver over the subtree.
func (n *Node) CalculateLayout(caches *Caches, scaleFactor float64) {
	n.LayoutResult.Position = Edges{
		Top:    Px(0),
		Left:   Px(0),
		Bottom: Auto,
		Right:  Auto,
	}
	n.resolveLayout(n.Layout.Size, caches, scaleFactor, false)
	// Second pass resolves percentages that needed full knowledge of the
	// children.
	n.resolveLayout(n.Layout.Size, caches, scaleFactor, true)
}
