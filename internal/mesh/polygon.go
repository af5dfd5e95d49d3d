package mesh

// polygon is the point list built while walking a cell's corners.
// Points compare by id, never by position.
type polygon []PointID

func (p *polygon) push(id PointID) {
	*p = append(*p, id)
}

func (p *polygon) pop() {
	*p = (*p)[:len(*p)-1]
}

func (p polygon) peek() (PointID, bool) {
	if len(p) == 0 {
		return 0, false
	}
	return p[len(p)-1], true
}

func (p polygon) indexOf(id PointID) int {
	for i, v := range p {
		if v == id {
			return i
		}
	}
	return -1
}
