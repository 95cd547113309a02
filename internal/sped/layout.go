package sped

import "github.com/demonstra-dev/demonstra/internal/model"

// offsets are the field positions of a movement record.
type offsets struct {
	code      int
	altCode   int // read when code is blank
	amount    int
	indicator int
}

// Balance rows (x155/x157/x156) carry the closing balance in VL_SLD_FIN;
// entry and result rows (I250, I355, K355/K356) carry a single value.
//
//	|I155|COD_CTA|COD_CCUS|VL_SLD_INI|IND_DC_INI|VL_DEB|VL_CRED|VL_SLD_FIN|IND_DC_FIN|
//	|I250|COD_CTA|COD_CCUS|VL_DC|IND_DC|NUM_ARQ|COD_HIST_PAD|HIST|COD_PART|
//	|K355|COD_CTA|COD_CCUS|VL_SLD_FIN|IND_VL_SLD_FIN|
var (
	balanceOffsets = offsets{code: 2, altCode: 3, amount: 8, indicator: 9}
	valueOffsets   = offsets{code: 2, altCode: 3, amount: 4, indicator: 5}

	// defaultOffsets is used when the header did not identify the book.
	defaultOffsets = balanceOffsets

	layouts = map[model.Variant]map[string]offsets{
		model.VariantECD: {
			"I15": balanceOffsets,
			"I25": valueOffsets,
			"I35": valueOffsets,
			"K15": balanceOffsets,
			"K35": balanceOffsets,
		},
		model.VariantECF: {
			"I15": balanceOffsets,
			"I25": valueOffsets,
			"I35": valueOffsets,
			"K15": balanceOffsets,
			"K35": valueOffsets,
		},
	}
)

// layoutFor picks field offsets by variant and tag family (first three characters).
func layoutFor(v model.Variant, tag string) offsets {
	byFamily, ok := layouts[v]
	if !ok || len(tag) < 3 {
		return defaultOffsets
	}
	if off, ok := byFamily[tag[:3]]; ok {
		return off
	}
	return defaultOffsets
}

// Direct statement rows.
//
//	|J100|COD_AGL|IND_COD_AGL|NIVEL_AGL|COD_AGL_SUP|IND_GRP_BAL|DESCR_COD_AGL|VL_CTA_INI|IND_DC_CTA_INI|VL_CTA_FIN|IND_DC_CTA_FIN|NOTA_EXP_REF|
//	|J150|NU_ORDEM|COD_AGL|IND_COD_AGL|NIVEL_AGL|COD_AGL_SUP|DESCR_COD_AGL|VL_CTA_INI|IND_DC_CTA_INI|VL_CTA_FIN|IND_DC_CTA_FIN|IND_GRP_DRE|NOTA_EXP_REF|
type directOffsets struct {
	code        int
	description int
	amount      int
	indicator   int
}

var directLayouts = map[string]directOffsets{
	BlockBalanceSheet:    {code: 2, description: 7, amount: 10, indicator: 11},
	BlockIncomeStatement: {code: 3, description: 7, amount: 10, indicator: 11},
}
