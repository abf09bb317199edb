package ppc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyntheticLisExpandsToAddis(t *testing.T) {
	lis := assembleOne(t, "lis r3, 0x1234")
	addis := assembleOne(t, "addis r3, r0, 0x1234")
	require.Equal(t, addis, lis)
}

func TestSyntheticLaExpandsToAddi(t *testing.T) {
	la := assembleOne(t, "la r3, 100(r4)")
	addi := assembleOne(t, "addi r3, r4, 100")
	require.Equal(t, addi, la)
}

func TestSyntheticNotExpandsToNor(t *testing.T) {
	not := assembleOne(t, "not r3, r4")
	nor := assembleOne(t, "nor r3, r4, r4")
	require.Equal(t, nor, not)
}

func TestSyntheticSubiNegatesImmediate(t *testing.T) {
	subi := assembleOne(t, "subi r3, r4, 10")
	addi := assembleOne(t, "addi r3, r4, -10")
	require.Equal(t, addi, subi)
}

func TestSyntheticSubExpandsToReversedSubf(t *testing.T) {
	sub := assembleOne(t, "sub r3, r4, r5")
	subf := assembleOne(t, "subf r3, r5, r4")
	require.Equal(t, subf, sub)
}

func TestSyntheticSlwiExpandsToRlwinm(t *testing.T) {
	slwi := assembleOne(t, "slwi r3, r4, 2")
	rlwinm := assembleOne(t, "rlwinm r3, r4, 2, 0, 29")
	require.Equal(t, rlwinm, slwi)
}

func TestSyntheticSrwiExpandsToRlwinm(t *testing.T) {
	srwi := assembleOne(t, "srwi r3, r4, 2")
	rlwinm := assembleOne(t, "rlwinm r3, r4, 30, 2, 31")
	require.Equal(t, rlwinm, srwi)
}

func TestSyntheticRotlwiExpandsToRlwinm(t *testing.T) {
	rotlwi := assembleOne(t, "rotlwi r3, r4, 5")
	rlwinm := assembleOne(t, "rlwinm r3, r4, 5, 0, 31")
	require.Equal(t, rlwinm, rotlwi)
}

func TestSyntheticClrlwiExpandsToRlwinm(t *testing.T) {
	clrlwi := assembleOne(t, "clrlwi r3, r4, 16")
	rlwinm := assembleOne(t, "rlwinm r3, r4, 0, 16, 31")
	require.Equal(t, rlwinm, clrlwi)
}

func TestSyntheticMtlrMflrExpandToSprForm(t *testing.T) {
	mtlr := assembleOne(t, "mtlr r3")
	mtspr := assembleOne(t, "mtspr 8, r3")
	require.Equal(t, mtspr, mtlr)

	mflr := assembleOne(t, "mflr r3")
	mfspr := assembleOne(t, "mfspr r3, 8")
	require.Equal(t, mfspr, mflr)
}

func TestSyntheticMtctrMfctrExpandToSprForm(t *testing.T) {
	mtctr := assembleOne(t, "mtctr r5")
	mtspr := assembleOne(t, "mtspr 9, r5")
	require.Equal(t, mtspr, mtctr)
}

func TestSyntheticCrsetCrclrExpandToCrLogic(t *testing.T) {
	crset := assembleOne(t, "crset 4")
	creqv := assembleOne(t, "creqv 4, 4, 4")
	require.Equal(t, creqv, crset)

	crclr := assembleOne(t, "crclr 6")
	crxor := assembleOne(t, "crxor 6, 6, 6")
	require.Equal(t, crxor, crclr)
}

func TestSyntheticCrmoveCrnotExpand(t *testing.T) {
	crmove := assembleOne(t, "crmove 2, 3")
	cror := assembleOne(t, "cror 2, 3, 3")
	require.Equal(t, cror, crmove)

	crnot := assembleOne(t, "crnot 2, 3")
	crnor := assembleOne(t, "crnor 2, 3, 3")
	require.Equal(t, crnor, crnot)
}

func TestSyntheticBlrExpandsToBclr(t *testing.T) {
	blr := assembleOne(t, "blr")
	bclr := assembleOne(t, "bclr 20, 0")
	require.Equal(t, bclr, blr)
}

func TestSyntheticBctrExpandsToBcctr(t *testing.T) {
	bctr := assembleOne(t, "bctr")
	bcctr := assembleOne(t, "bcctr 20, 0")
	require.Equal(t, bcctr, bctr)
}
