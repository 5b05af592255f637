package model

// Element is a tagged variant over the supported element cards.
// Unknown cards decode into Unsupported.
type Element interface {
	ElementType() string
	isElement()
}

// Property is a tagged variant over the supported property cards.
type Property interface {
	PropertyType() string
	isProperty()
}

// Material is a tagged variant over the supported material cards.
type Material interface {
	MaterialType() string
	isMaterial()
}

// Unsupported is any card without a packing rule. It satisfies Element,
// Property and Material so a category keeps its other cards.
type Unsupported struct {
	Type string `json:"type" yaml:"type"`
	ID   int64  `json:"id,omitempty" yaml:"id,omitempty"`
}

func (u Unsupported) ElementType() string  { return u.Type }
func (u Unsupported) PropertyType() string { return u.Type }
func (u Unsupported) MaterialType() string { return u.Type }
func (Unsupported) isElement()             {}
func (Unsupported) isProperty()            {}
func (Unsupported) isMaterial()            {}

type CQuad4 struct {
	EID   int64      `json:"eid" yaml:"eid"`
	PID   int64      `json:"pid" yaml:"pid"`
	Nodes [4]int64   `json:"nodes" yaml:"nodes"`
	Theta float64    `json:"theta,omitempty" yaml:"theta,omitempty"`
	ZOffs float64    `json:"zoffs,omitempty" yaml:"zoffs,omitempty"`
	TFlag int64      `json:"tflag,omitempty" yaml:"tflag,omitempty"`
	T     [4]float64 `json:"t,omitempty" yaml:"t,omitempty"`
	MCID  int64      `json:"mcid,omitempty" yaml:"mcid,omitempty"`
}

type CTria3 struct {
	EID   int64      `json:"eid" yaml:"eid"`
	PID   int64      `json:"pid" yaml:"pid"`
	Nodes [3]int64   `json:"nodes" yaml:"nodes"`
	Theta float64    `json:"theta,omitempty" yaml:"theta,omitempty"`
	ZOffs float64    `json:"zoffs,omitempty" yaml:"zoffs,omitempty"`
	TFlag int64      `json:"tflag,omitempty" yaml:"tflag,omitempty"`
	T     [3]float64 `json:"t,omitempty" yaml:"t,omitempty"`
	MCID  int64      `json:"mcid,omitempty" yaml:"mcid,omitempty"`
}

type CBar struct {
	EID  int64      `json:"eid" yaml:"eid"`
	PID  int64      `json:"pid" yaml:"pid"`
	GA   int64      `json:"ga" yaml:"ga"`
	GB   int64      `json:"gb" yaml:"gb"`
	Flag int64      `json:"flag,omitempty" yaml:"flag,omitempty"`
	X    [3]float64 `json:"x,omitempty" yaml:"x,omitempty"`
	G0   int64      `json:"g0,omitempty" yaml:"g0,omitempty"`
	PA   int64      `json:"pa,omitempty" yaml:"pa,omitempty"`
	PB   int64      `json:"pb,omitempty" yaml:"pb,omitempty"`
	WA   [3]float64 `json:"wa,omitempty" yaml:"wa,omitempty"`
	WB   [3]float64 `json:"wb,omitempty" yaml:"wb,omitempty"`
}

type CBeam struct {
	EID int64      `json:"eid" yaml:"eid"`
	PID int64      `json:"pid" yaml:"pid"`
	GA  int64      `json:"ga" yaml:"ga"`
	GB  int64      `json:"gb" yaml:"gb"`
	SA  int64      `json:"sa,omitempty" yaml:"sa,omitempty"`
	SB  int64      `json:"sb,omitempty" yaml:"sb,omitempty"`
	X   [3]float64 `json:"x,omitempty" yaml:"x,omitempty"`
	G0  int64      `json:"g0,omitempty" yaml:"g0,omitempty"`
	F   int64      `json:"f,omitempty" yaml:"f,omitempty"`
	PA  int64      `json:"pa,omitempty" yaml:"pa,omitempty"`
	PB  int64      `json:"pb,omitempty" yaml:"pb,omitempty"`
	WA  [3]float64 `json:"wa,omitempty" yaml:"wa,omitempty"`
	WB  [3]float64 `json:"wb,omitempty" yaml:"wb,omitempty"`
}

type CRod struct {
	EID   int64    `json:"eid" yaml:"eid"`
	PID   int64    `json:"pid" yaml:"pid"`
	Nodes [2]int64 `json:"nodes" yaml:"nodes"`
}

type Conrod struct {
	EID   int64    `json:"eid" yaml:"eid"`
	Nodes [2]int64 `json:"nodes" yaml:"nodes"`
	MID   int64    `json:"mid" yaml:"mid"`
	A     float64  `json:"a,omitempty" yaml:"a,omitempty"`
	J     float64  `json:"j,omitempty" yaml:"j,omitempty"`
	C     float64  `json:"c,omitempty" yaml:"c,omitempty"`
	NSM   float64  `json:"nsm,omitempty" yaml:"nsm,omitempty"`
}

type CBush struct {
	EID   int64      `json:"eid" yaml:"eid"`
	PID   int64      `json:"pid" yaml:"pid"`
	Nodes [2]int64   `json:"nodes" yaml:"nodes"`
	CID   int64      `json:"cid,omitempty" yaml:"cid,omitempty"`
	S     float64    `json:"s,omitempty" yaml:"s,omitempty"`
	OCID  int64      `json:"ocid,omitempty" yaml:"ocid,omitempty"`
	S1    [3]float64 `json:"s1,omitempty" yaml:"s1,omitempty"`
	Flag  int64      `json:"flag,omitempty" yaml:"flag,omitempty"`
	X     [3]float64 `json:"x,omitempty" yaml:"x,omitempty"`
}

// Solid elements list their corner and (optional) mid-side grids.
type (
	CHexa struct {
		Solid `yaml:",inline"`
	}
	CPenta struct {
		Solid `yaml:",inline"`
	}
	CTetra struct {
		Solid `yaml:",inline"`
	}
)

type Solid struct {
	EID   int64   `json:"eid" yaml:"eid"`
	PID   int64   `json:"pid" yaml:"pid"`
	Nodes []int64 `json:"nodes" yaml:"nodes"`
}

func (CQuad4) ElementType() string { return "CQUAD4" }
func (CTria3) ElementType() string { return "CTRIA3" }
func (CBar) ElementType() string   { return "CBAR" }
func (CBeam) ElementType() string  { return "CBEAM" }
func (CRod) ElementType() string   { return "CROD" }
func (Conrod) ElementType() string { return "CONROD" }
func (CBush) ElementType() string  { return "CBUSH" }
func (CHexa) ElementType() string  { return "CHEXA" }
func (CPenta) ElementType() string { return "CPENTA" }
func (CTetra) ElementType() string { return "CTETRA" }

func (CQuad4) isElement() {}
func (CTria3) isElement() {}
func (CBar) isElement()   {}
func (CBeam) isElement()  {}
func (CRod) isElement()   {}
func (Conrod) isElement() {}
func (CBush) isElement()  {}
func (CHexa) isElement()  {}
func (CPenta) isElement() {}
func (CTetra) isElement() {}

// PShell leaves MID2, MID3 and MID4 nil when the card omits them.
type PShell struct {
	PID  int64   `json:"pid" yaml:"pid"`
	MID1 int64   `json:"mid1" yaml:"mid1"`
	T    float64 `json:"t" yaml:"t"`
	MID2 *int64  `json:"mid2,omitempty" yaml:"mid2,omitempty"`
	BK   float64 `json:"bk,omitempty" yaml:"bk,omitempty"`
	MID3 *int64  `json:"mid3,omitempty" yaml:"mid3,omitempty"`
	TS   float64 `json:"ts,omitempty" yaml:"ts,omitempty"`
	NSM  float64 `json:"nsm,omitempty" yaml:"nsm,omitempty"`
	Z1   float64 `json:"z1,omitempty" yaml:"z1,omitempty"`
	Z2   float64 `json:"z2,omitempty" yaml:"z2,omitempty"`
	MID4 *int64  `json:"mid4,omitempty" yaml:"mid4,omitempty"`
}

type PComp struct {
	PID   int64   `json:"pid" yaml:"pid"`
	Z0    float64 `json:"z0,omitempty" yaml:"z0,omitempty"`
	NSM   float64 `json:"nsm,omitempty" yaml:"nsm,omitempty"`
	SB    float64 `json:"sb,omitempty" yaml:"sb,omitempty"`
	FT    string  `json:"ft,omitempty" yaml:"ft,omitempty"`
	TRef  float64 `json:"tref,omitempty" yaml:"tref,omitempty"`
	GE    float64 `json:"ge,omitempty" yaml:"ge,omitempty"`
	Lam   string  `json:"lam,omitempty" yaml:"lam,omitempty"`
	Plies []Ply   `json:"plies" yaml:"plies"`
}

type Ply struct {
	MID   int64   `json:"mid" yaml:"mid"`
	T     float64 `json:"t" yaml:"t"`
	Theta float64 `json:"theta,omitempty" yaml:"theta,omitempty"`
	SOut  string  `json:"sout,omitempty" yaml:"sout,omitempty"`
}

type PRod struct {
	PID int64   `json:"pid" yaml:"pid"`
	MID int64   `json:"mid" yaml:"mid"`
	A   float64 `json:"a,omitempty" yaml:"a,omitempty"`
	J   float64 `json:"j,omitempty" yaml:"j,omitempty"`
	C   float64 `json:"c,omitempty" yaml:"c,omitempty"`
	NSM float64 `json:"nsm,omitempty" yaml:"nsm,omitempty"`
}

type PBar struct {
	PID int64   `json:"pid" yaml:"pid"`
	MID int64   `json:"mid" yaml:"mid"`
	A   float64 `json:"a,omitempty" yaml:"a,omitempty"`
	I1  float64 `json:"i1,omitempty" yaml:"i1,omitempty"`
	I2  float64 `json:"i2,omitempty" yaml:"i2,omitempty"`
	J   float64 `json:"j,omitempty" yaml:"j,omitempty"`
	NSM float64 `json:"nsm,omitempty" yaml:"nsm,omitempty"`
	C1  float64 `json:"c1,omitempty" yaml:"c1,omitempty"`
	C2  float64 `json:"c2,omitempty" yaml:"c2,omitempty"`
	D1  float64 `json:"d1,omitempty" yaml:"d1,omitempty"`
	D2  float64 `json:"d2,omitempty" yaml:"d2,omitempty"`
	E1  float64 `json:"e1,omitempty" yaml:"e1,omitempty"`
	E2  float64 `json:"e2,omitempty" yaml:"e2,omitempty"`
	F1  float64 `json:"f1,omitempty" yaml:"f1,omitempty"`
	F2  float64 `json:"f2,omitempty" yaml:"f2,omitempty"`
	K1  float64 `json:"k1,omitempty" yaml:"k1,omitempty"`
	K2  float64 `json:"k2,omitempty" yaml:"k2,omitempty"`
	I12 float64 `json:"i12,omitempty" yaml:"i12,omitempty"`
}

// PBush holds up to six stiffness, damping and structural damping values.
type PBush struct {
	PID int64     `json:"pid" yaml:"pid"`
	K   []float64 `json:"k,omitempty" yaml:"k,omitempty"`
	B   []float64 `json:"b,omitempty" yaml:"b,omitempty"`
	GE  []float64 `json:"ge,omitempty" yaml:"ge,omitempty"`
}

type PSolid struct {
	PID    int64  `json:"pid" yaml:"pid"`
	MID    int64  `json:"mid" yaml:"mid"`
	CordM  int64  `json:"cordm,omitempty" yaml:"cordm,omitempty"`
	In     int64  `json:"in,omitempty" yaml:"in,omitempty"`
	Stress int64  `json:"stress,omitempty" yaml:"stress,omitempty"`
	ISOP   int64  `json:"isop,omitempty" yaml:"isop,omitempty"`
	FCTN   string `json:"fctn,omitempty" yaml:"fctn,omitempty"`
}

func (PShell) PropertyType() string { return "PSHELL" }
func (PComp) PropertyType() string  { return "PCOMP" }
func (PRod) PropertyType() string   { return "PROD" }
func (PBar) PropertyType() string   { return "PBAR" }
func (PBush) PropertyType() string  { return "PBUSH" }
func (PSolid) PropertyType() string { return "PSOLID" }

func (PShell) isProperty() {}
func (PComp) isProperty()  {}
func (PRod) isProperty()   {}
func (PBar) isProperty()   {}
func (PBush) isProperty()  {}
func (PSolid) isProperty() {}

type Mat1 struct {
	MID   int64   `json:"mid" yaml:"mid"`
	E     float64 `json:"e,omitempty" yaml:"e,omitempty"`
	G     float64 `json:"g,omitempty" yaml:"g,omitempty"`
	NU    float64 `json:"nu,omitempty" yaml:"nu,omitempty"`
	Rho   float64 `json:"rho,omitempty" yaml:"rho,omitempty"`
	A     float64 `json:"a,omitempty" yaml:"a,omitempty"`
	TRef  float64 `json:"tref,omitempty" yaml:"tref,omitempty"`
	GE    float64 `json:"ge,omitempty" yaml:"ge,omitempty"`
	ST    float64 `json:"st,omitempty" yaml:"st,omitempty"`
	SC    float64 `json:"sc,omitempty" yaml:"sc,omitempty"`
	SS    float64 `json:"ss,omitempty" yaml:"ss,omitempty"`
	MCSID int64   `json:"mcsid,omitempty" yaml:"mcsid,omitempty"`
}

type Mat2 struct {
	MID   int64   `json:"mid" yaml:"mid"`
	G11   float64 `json:"g11,omitempty" yaml:"g11,omitempty"`
	G12   float64 `json:"g12,omitempty" yaml:"g12,omitempty"`
	G13   float64 `json:"g13,omitempty" yaml:"g13,omitempty"`
	G22   float64 `json:"g22,omitempty" yaml:"g22,omitempty"`
	G23   float64 `json:"g23,omitempty" yaml:"g23,omitempty"`
	G33   float64 `json:"g33,omitempty" yaml:"g33,omitempty"`
	Rho   float64 `json:"rho,omitempty" yaml:"rho,omitempty"`
	A1    float64 `json:"a1,omitempty" yaml:"a1,omitempty"`
	A2    float64 `json:"a2,omitempty" yaml:"a2,omitempty"`
	A3    float64 `json:"a3,omitempty" yaml:"a3,omitempty"`
	TRef  float64 `json:"tref,omitempty" yaml:"tref,omitempty"`
	GE    float64 `json:"ge,omitempty" yaml:"ge,omitempty"`
	ST    float64 `json:"st,omitempty" yaml:"st,omitempty"`
	SC    float64 `json:"sc,omitempty" yaml:"sc,omitempty"`
	SS    float64 `json:"ss,omitempty" yaml:"ss,omitempty"`
	MCSID int64   `json:"mcsid,omitempty" yaml:"mcsid,omitempty"`
}

type Mat8 struct {
	MID  int64   `json:"mid" yaml:"mid"`
	E1   float64 `json:"e1,omitempty" yaml:"e1,omitempty"`
	E2   float64 `json:"e2,omitempty" yaml:"e2,omitempty"`
	NU12 float64 `json:"nu12,omitempty" yaml:"nu12,omitempty"`
	G12  float64 `json:"g12,omitempty" yaml:"g12,omitempty"`
	G1Z  float64 `json:"g1z,omitempty" yaml:"g1z,omitempty"`
	G2Z  float64 `json:"g2z,omitempty" yaml:"g2z,omitempty"`
	Rho  float64 `json:"rho,omitempty" yaml:"rho,omitempty"`
	A1   float64 `json:"a1,omitempty" yaml:"a1,omitempty"`
	A2   float64 `json:"a2,omitempty" yaml:"a2,omitempty"`
	TRef float64 `json:"tref,omitempty" yaml:"tref,omitempty"`
	Xt   float64 `json:"xt,omitempty" yaml:"xt,omitempty"`
	Xc   float64 `json:"xc,omitempty" yaml:"xc,omitempty"`
	Yt   float64 `json:"yt,omitempty" yaml:"yt,omitempty"`
	Yc   float64 `json:"yc,omitempty" yaml:"yc,omitempty"`
	S    float64 `json:"s,omitempty" yaml:"s,omitempty"`
	GE   float64 `json:"ge,omitempty" yaml:"ge,omitempty"`
	F12  float64 `json:"f12,omitempty" yaml:"f12,omitempty"`
	Strn float64 `json:"strn,omitempty" yaml:"strn,omitempty"`
}

func (Mat1) MaterialType() string { return "MAT1" }
func (Mat2) MaterialType() string { return "MAT2" }
func (Mat8) MaterialType() string { return "MAT8" }

func (Mat1) isMaterial() {}
func (Mat2) isMaterial() {}
func (Mat8) isMaterial() {}
