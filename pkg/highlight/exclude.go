package highlight

import "fmt"

// ApplyExclusions removes span ranges that fall under document regions not
// eligible for highlighting. The result covers the same range as span, or a
// remainder of it.
func ApplyExclusions(doc *Analysis, span *SpanRange) *SpanRange {
	if doc.HighlightAll {
		return span
	}

	if !doc.Highlight {
		return clipNormalized(span, doc.Offset, doc.End())
	}

	for _, child := range doc.Children {
		span = ApplyExclusions(child, span)
	}

	return span
}

// clip removes [begin, end) from span.
//
// It returns span itself when the ranges are disjoint, nothing when span lies
// inside the exclusion, one remainder when span overlaps one edge and two when
// the exclusion falls strictly inside span. Remainders keep the class; nested
// spans are clipped the same way and go to the remainder they fall in.
// The input is never modified.
func clip(span *SpanRange, begin, end int) []*SpanRange {
	spanEnd := span.End()

	if (span.Offset < begin && spanEnd <= begin) || span.Offset >= end {
		return []*SpanRange{span}
	}

	if span.Offset >= begin && spanEnd <= end {
		return nil
	}

	var children []*SpanRange
	for _, child := range span.Children {
		children = append(children, clip(child, begin, end)...)
	}

	if span.Offset < begin && spanEnd > end {
		left := &SpanRange{Class: span.Class, Offset: span.Offset, Length: begin - span.Offset}
		right := &SpanRange{Class: span.Class, Offset: end, Length: spanEnd - end}
		for _, child := range children {
			if child.Offset < begin {
				left.Children = append(left.Children, child)
			} else {
				right.Children = append(right.Children, child)
			}
		}
		return []*SpanRange{left, right}
	}

	if span.Offset < begin {
		return []*SpanRange{{Class: span.Class, Offset: span.Offset, Length: begin - span.Offset, Children: children}}
	}
	return []*SpanRange{{Class: span.Class, Offset: end, Length: spanEnd - end, Children: children}}
}

// clipNormalized is clip folded back into a single span. A dropped span
// becomes an unlabeled placeholder over the same range; two remainders become
// an unlabeled group.
func clipNormalized(span *SpanRange, begin, end int) *SpanRange {
	parts := clip(span, begin, end)

	switch len(parts) {
	case 0:
		return &SpanRange{Offset: span.Offset, Length: span.Length}
	case 1:
		return parts[0]
	default:
		return &SpanRange{
			Offset:   parts[0].Offset,
			Length:   parts[1].End() - parts[0].Offset,
			Children: parts,
		}
	}
}

// splitSpan cuts span at an offset strictly inside it.
func splitSpan(span *SpanRange, at int) (*SpanRange, *SpanRange, error) {
	parts := clip(span, at, at)
	if len(parts) != 2 {
		return nil, nil, &RangeError{
			Op:     "split span",
			Offset: span.Offset,
			End:    span.End(),
			Reason: fmt.Sprintf("offset %d not inside span", at),
		}
	}
	return parts[0], parts[1], nil
}
