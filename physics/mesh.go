package physics

// Mesh is a simple rectilinear structured mesh: the physical extent a
// patch's index space is mapped onto, and the cell count on each
// axis. It is the bridge between a patch's integer index space and the
// physical coordinates the solver's fluxes are computed in.
type Mesh struct {
	AreaI, AreaJ [2]float64
	SizeI, SizeJ int64
}

// CellSpacing returns the physical cell width on each axis.
func (m Mesh) CellSpacing() (dx, dy float64) {
	dx = (m.AreaI[1] - m.AreaI[0]) / float64(m.SizeI)
	dy = (m.AreaJ[1] - m.AreaJ[0]) / float64(m.SizeJ)
	return dx, dy
}

// CellCenter returns the physical coordinates of the center of cell
// (i,j).
func (m Mesh) CellCenter(i, j int64) (x, y float64) {
	dx, dy := m.CellSpacing()
	x = m.AreaI[0] + dx*(float64(i)+0.5)
	y = m.AreaJ[0] + dy*(float64(j)+0.5)
	return x, y
}

// TotalZones returns the number of cells in the mesh.
func (m Mesh) TotalZones() int64 { return m.SizeI * m.SizeJ }
