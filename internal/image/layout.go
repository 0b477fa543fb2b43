package imagepkg

// FontTier selects one of the three card type sizes.
type FontTier int

const (
	TierTitle FontTier = iota
	TierBody
	TierSmall
)

type OpKind int

const (
	OpText OpKind = iota
	OpRule
)

// Role tags what a draw instruction renders.
type Role string

const (
	RoleTitle            Role = "title"
	RolePoemLine         Role = "poem_line"
	RoleSeparator        Role = "separator"
	RoleReflectionHeader Role = "reflection_header"
	RoleReflectionLine   Role = "reflection_line"
	RoleFooter           Role = "footer"
)

// DrawOp is a single positioned draw instruction. Text ops are anchored at
// their top-left corner; rule ops span X..X2 at Y.
type DrawOp struct {
	Kind  OpKind
	Role  Role
	X, Y  float64
	X2    float64
	Text  string
	Tier  FontTier
	Color RGB
}

// Layout is the card geometry for one set of inputs.
type Layout struct {
	Width  int
	Height int
	Ops    []DrawOp
}

// TextOps returns the ops with the given role, in draw order.
func (l Layout) TextOps(role Role) []DrawOp {
	var out []DrawOp
	for _, op := range l.Ops {
		if op.Kind == OpText && op.Role == role {
			out = append(out, op)
		}
	}
	return out
}

func reflectionShown(reflection string, include bool) bool {
	return include && reflection != ""
}

// ComputeHeight returns the canvas height for lineCount poem lines and an
// optional reflection.
func ComputeHeight(cfg CardConfig, lineCount int, reflection string, include bool) int {
	poemHeight := max(cfg.MinPoemHeight, lineCount*cfg.LineHeight)

	reflectionHeight := 0
	if reflectionShown(reflection, include) {
		chunks := ceilDiv(len([]rune(reflection)), cfg.Locale.CharsPerLine)
		reflectionHeight = cfg.ReflectionHeader + chunks*cfg.WrapLineHeight
	}
	return cfg.TitleHeight + poemHeight + reflectionHeight + cfg.FooterMargin
}

// WrapFixed cuts s into chunks of n characters. It is not word aware and may
// split inside a word. n <= 0 keeps s whole.
func WrapFixed(s string, n int) []string {
	if s == "" {
		return nil
	}
	runes := []rune(s)
	if n <= 0 {
		return []string{s}
	}
	out := make([]string, 0, ceilDiv(len(runes), n))
	for i := 0; i < len(runes); i += n {
		end := min(i+n, len(runes))
		out = append(out, string(runes[i:end]))
	}
	return out
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		if a > 0 {
			return 1
		}
		return 0
	}
	return (a + b - 1) / b
}

// BuildLayout computes the card height and every text and rule instruction.
func BuildLayout(cfg CardConfig, lines []string, reflection string, include bool, accent RGB) Layout {
	l := Layout{
		Width:  cfg.Width,
		Height: ComputeHeight(cfg, len(lines), reflection, include),
	}
	text := func(role Role, x, y float64, s string, tier FontTier, c RGB) {
		l.Ops = append(l.Ops, DrawOp{Kind: OpText, Role: role, X: x, Y: y, Text: s, Tier: tier, Color: c})
	}

	text(RoleTitle, cfg.TitleX, cfg.TitleY, cfg.Locale.Title, TierTitle, cfg.TitleColor)

	y := cfg.PoemTop
	for _, line := range lines {
		text(RolePoemLine, cfg.BodyX, y, line, TierBody, cfg.LineColor)
		y += float64(cfg.LineHeight)
	}

	if reflectionShown(reflection, include) {
		y += cfg.RuleGap
		l.Ops = append(l.Ops, DrawOp{Kind: OpRule, Role: RoleSeparator, X: cfg.RuleX1, X2: cfg.RuleX2, Y: y, Color: cfg.RuleColor})
		y += cfg.RuleGap
		text(RoleReflectionHeader, cfg.BodyX, y, cfg.Locale.ReflectionHeader, TierBody, accent)
		y += cfg.HeaderGap
		for _, chunk := range WrapFixed(reflection, cfg.Locale.CharsPerLine) {
			text(RoleReflectionLine, cfg.BodyX, y, chunk, TierBody, cfg.ReflectionColor)
			y += float64(cfg.WrapLineHeight)
		}
	}

	text(RoleFooter, float64(l.Width)-cfg.FooterOffsetX, float64(l.Height)-cfg.FooterOffsetY,
		cfg.Locale.Footer, TierSmall, cfg.FooterColor)
	return l
}
