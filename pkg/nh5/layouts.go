package nh5

// Layout versions start at 1 and bump on any change to a layout.
const layoutV1 int64 = 1

// Bookkeeping tables.
var (
	Domain = register(NewLayout("DOMAINS", layoutV1,
		I8("ID"), I8("SUBCASE"), I8("STEP"), I8("ANALYSIS"),
		F8("TIME_FREQ_EIGR"), F8("EIGI"),
		I8("MODE"), I8("DESIGN_CYCLE"), I8("RANDOM"), I8("SE"),
		I8("AFPM"), I8("TRMC"), I8("INSTANCE"), I8("MODULE"),
	))

	Index = register(NewLayout("INDEX", layoutV1,
		I8("DOMAIN_ID"), I8("POSITION"), I8("LENGTH"),
	))
)

// Nodal results.
var (
	Nodal = register(NewLayout("NODAL", layoutV1,
		I8("ID"), F8("X"), F8("Y"), F8("Z"), F8("RX"), F8("RY"), F8("RZ"), I8("DOMAIN_ID"),
	))

	GridForce = register(NewLayout("GRID_FORCE", layoutV1,
		I8("ID"), I8("EID"), S("ELNAME", 8),
		F8("F1"), F8("F2"), F8("F3"), F8("M1"), F8("M2"), F8("M3"),
		I8("DOMAIN_ID"),
	))
)

// Elemental stress/strain. Strain tables reuse the stress layouts.
var (
	PlateCenter = register(NewLayout("PLATE_CENTER", layoutV1,
		I8("EID"),
		F8("FD1"), F8("X1"), F8("Y1"), F8("XY1"),
		F8("FD2"), F8("X2"), F8("Y2"), F8("XY2"),
		I8("DOMAIN_ID"),
	))

	PlateCorner = register(NewLayout("PLATE_CORNER", layoutV1,
		I8("EID"), S("TERM", 4), I8("GRID"),
		F8("FD"), F8("X"), F8("Y"), F8("XY"),
		I8("DOMAIN_ID"),
	))

	BarStress = register(NewLayout("BAR_STRESS", layoutV1,
		I8("EID"),
		F8("X1A"), F8("X2A"), F8("X3A"), F8("X4A"),
		F8("AX"), F8("MAXA"), F8("MINA"), F8("MST"),
		F8("X1B"), F8("X2B"), F8("X3B"), F8("X4B"),
		F8("MAXB"), F8("MINB"), F8("MSC"),
		I8("DOMAIN_ID"),
	))

	RodStress = register(NewLayout("ROD_STRESS", layoutV1,
		I8("EID"), F8("A"), F8("MSA"), F8("T"), F8("MST"), I8("DOMAIN_ID"),
	))

	BushStress = register(NewLayout("BUSH_STRESS", layoutV1,
		I8("EID"), F8("TX"), F8("TY"), F8("TZ"), F8("RX"), F8("RY"), F8("RZ"), I8("DOMAIN_ID"),
	))

	BeamStress = register(NewLayout("BEAM_STRESS", layoutV1,
		I8("EID"), I8("GRID"), F8("SD"),
		F8("XC"), F8("XD"), F8("XE"), F8("XF"),
		F8("MAX"), F8("MIN"), F8("MST"), F8("MSC"),
		I8("DOMAIN_ID"),
	))

	SolidSample = register(NewLayout("SOLID_SAMPLE", layoutV1,
		I8("GRID"), F8("X"), F8("Y"), F8("Z"), F8("TXY"), F8("TYZ"), F8("TZX"),
	))

	HexaStress  = register(solidLayout("HEXA_STRESS", HexaSamples))
	PentaStress = register(solidLayout("PENTA_STRESS", PentaSamples))
	TetraStress = register(solidLayout("TETRA_STRESS", TetraSamples))
)

// Solid sample point counts: center plus corners.
const (
	HexaSamples  = 9
	PentaSamples = 7
	TetraSamples = 5
)

func solidLayout(name string, samples int) *Layout {
	return NewLayout(name, layoutV1,
		I8("EID"), I8("CID"), S("CTYPE", 4), I8("NODEF"),
		Nested("SS", SolidSample, samples),
		I8("DOMAIN_ID"),
	)
}

// Element forces.
var (
	BarForce = register(NewLayout("BAR_FORCE", layoutV1,
		I8("EID"),
		F8("BM1A"), F8("BM2A"), F8("BM1B"), F8("BM2B"),
		F8("TS1"), F8("TS2"), F8("AF"), F8("TRQ"),
		I8("DOMAIN_ID"),
	))

	RodForce = register(NewLayout("ROD_FORCE", layoutV1,
		I8("EID"), F8("AF"), F8("TRQ"), I8("DOMAIN_ID"),
	))

	BushForce = register(NewLayout("BUSH_FORCE", layoutV1,
		I8("EID"), F8("FX"), F8("FY"), F8("FZ"), F8("MX"), F8("MY"), F8("MZ"), I8("DOMAIN_ID"),
	))

	PlateForce = register(NewLayout("PLATE_FORCE", layoutV1,
		I8("EID"),
		F8("MX"), F8("MY"), F8("MXY"),
		F8("BMX"), F8("BMY"), F8("BMXY"),
		F8("TX"), F8("TY"),
		I8("DOMAIN_ID"),
	))

	BeamForce = register(NewLayout("BEAM_FORCE", layoutV1,
		I8("EID"),
		I8("GRIDA"), F8("SDA"), F8("BM1A"), F8("BM2A"), F8("TS1A"), F8("TS2A"), F8("AFA"), F8("TTRQA"), F8("WTRQA"),
		I8("GRIDB"), F8("SDB"), F8("BM1B"), F8("BM2B"), F8("TS1B"), F8("TS2B"), F8("AFB"), F8("TTRQB"), F8("WTRQB"),
		I8("DOMAIN_ID"),
	))
)

// Summary tables.
var (
	Eigenvalue = register(NewLayout("EIGENVALUE", layoutV1,
		I8("MODE"), I8("ORDER"),
		F8("EIGEN"), F8("OMEGA"), F8("FREQ"), F8("MASS"), F8("STIFF"),
		I8("RESFLG"), I8("FLDFLG"),
		I8("DOMAIN_ID"),
	))
)

// Input geometry.
var (
	Grid = register(NewLayout("GRID", layoutV1,
		I8("ID"), I8("CP"), F8s("X", 3), I8("CD"), I8("PS"), I8("SEID"), I8("DOMAIN_ID"),
	))

	CQuad4 = register(NewLayout("CQUAD4", layoutV1,
		I8("EID"), I8("PID"), I8s("G", 4),
		F8("THETA"), F8("ZOFFS"), I8("TFLAG"), F8s("T", 4), I8("MCID"),
		I8("DOMAIN_ID"),
	))

	CTria3 = register(NewLayout("CTRIA3", layoutV1,
		I8("EID"), I8("PID"), I8s("G", 3),
		F8("THETA"), F8("ZOFFS"), I8("TFLAG"), F8s("T", 3), I8("MCID"),
		I8("DOMAIN_ID"),
	))

	CBar = register(NewLayout("CBAR", layoutV1,
		I8("EID"), I8("PID"), I8("GA"), I8("GB"), I8("FLAG"),
		F8s("X", 3), I8("GO"), I8("PA"), I8("PB"),
		F8s("WA", 3), F8s("WB", 3),
		I8("DOMAIN_ID"),
	))

	CBeam = register(NewLayout("CBEAM", layoutV1,
		I8("EID"), I8("PID"), I8("GA"), I8("GB"), I8("SA"), I8("SB"),
		F8s("X", 3), I8("G0"), I8("F"), I8("PA"), I8("PB"),
		F8s("WA", 3), F8s("WB", 3),
		I8("DOMAIN_ID"),
	))

	CRod = register(NewLayout("CROD", layoutV1,
		I8("EID"), I8("PID"), I8s("G", 2), I8("DOMAIN_ID"),
	))

	Conrod = register(NewLayout("CONROD", layoutV1,
		I8("EID"), I8s("G", 2), I8("MID"),
		F8("A"), F8("J"), F8("C"), F8("NSM"),
		I8("DOMAIN_ID"),
	))

	CBush = register(NewLayout("CBUSH", layoutV1,
		I8("EID"), I8("PID"), I8s("G", 2), I8("CID"), F8("S"), I8("OCID"),
		F8s("S1", 3), I8("FLAG"), F8s("X", 3),
		I8("DOMAIN_ID"),
	))

	CHexa  = register(solidElementLayout("CHEXA", 20))
	CPenta = register(solidElementLayout("CPENTA", 15))
	CTetra = register(solidElementLayout("CTETRA", 10))
)

func solidElementLayout(name string, nodes int) *Layout {
	return NewLayout(name, layoutV1, I8("EID"), I8("PID"), I8s("G", nodes), I8("DOMAIN_ID"))
}

// Input properties.
var (
	PShell = register(NewLayout("PSHELL", layoutV1,
		I8("PID"), I8("MID1"), F8("T"), I8("MID2"), F8("BK"), I8("MID3"),
		F8("TS"), F8("NSM"), F8("Z1"), F8("Z2"), I8("MID4"),
		I8("DOMAIN_ID"),
	))

	PCompPly = register(NewLayout("PCOMP_PLY", layoutV1,
		I8("MID"), F8("T"), F8("THETA"), S("SOUT", 4),
	))

	PComp = register(NewLayout("PCOMP", layoutV1,
		I8("PID"), I8("NPLIES"), F8("Z0"), F8("NSM"), F8("SB"), I8("FT"),
		F8("TREF"), F8("GE"), S("LAM", 8),
		Nested("PLY", PCompPly, MaxPlies),
		I8("DOMAIN_ID"),
	))

	PRod = register(NewLayout("PROD", layoutV1,
		I8("PID"), I8("MID"), F8("A"), F8("J"), F8("C"), F8("NSM"), I8("DOMAIN_ID"),
	))

	PBar = register(NewLayout("PBAR", layoutV1,
		I8("PID"), I8("MID"), F8("A"), F8("I1"), F8("I2"), F8("J"), F8("NSM"),
		F8("C1"), F8("C2"), F8("D1"), F8("D2"), F8("E1"), F8("E2"), F8("F1"), F8("F2"),
		F8("K1"), F8("K2"), F8("I12"),
		I8("DOMAIN_ID"),
	))

	PBush = register(NewLayout("PBUSH", layoutV1,
		I8("PID"), F8s("K", 6), F8s("B", 6), F8s("GE", 6), I8("DOMAIN_ID"),
	))

	PSolid = register(NewLayout("PSOLID", layoutV1,
		I8("PID"), I8("MID"), I8("CORDM"), I8("IN"), I8("STRESS"), I8("ISOP"), S("FCTN", 4),
		I8("DOMAIN_ID"),
	))
)

// Input materials.
var (
	Mat1 = register(NewLayout("MAT1", layoutV1,
		I8("MID"), F8("E"), F8("G"), F8("NU"), F8("RHO"), F8("A"), F8("TREF"), F8("GE"),
		F8("ST"), F8("SC"), F8("SS"), I8("MCSID"),
		I8("DOMAIN_ID"),
	))

	Mat2 = register(NewLayout("MAT2", layoutV1,
		I8("MID"),
		F8("G11"), F8("G12"), F8("G13"), F8("G22"), F8("G23"), F8("G33"),
		F8("RHO"), F8("A1"), F8("A2"), F8("A3"), F8("TREF"), F8("GE"),
		F8("ST"), F8("SC"), F8("SS"), I8("MCSID"),
		I8("DOMAIN_ID"),
	))

	Mat8 = register(NewLayout("MAT8", layoutV1,
		I8("MID"), F8("E1"), F8("E2"), F8("NU12"), F8("G12"), F8("G1Z"), F8("G2Z"),
		F8("RHO"), F8("A1"), F8("A2"), F8("TREF"),
		F8("XT"), F8("XC"), F8("YT"), F8("YC"), F8("S"),
		F8("GE"), F8("F12"), F8("STRN"),
		I8("DOMAIN_ID"),
	))
)
