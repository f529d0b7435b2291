// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"fmt"
	"math"

	"github.com/pdiddy/opsdocs/pkg/types"
)

// stylesXML renders word/styles.xml. The body font and size from the theme
// become the document defaults; headings, the code-block quote style, the
// bullet style and the grid table style are declared so block styles
// resolve in any consumer.
func stylesXML(theme types.Theme) string {
	bodySize := int(math.Round(theme.BodySize * 2))
	return xmlHeader + fmt.Sprintf(`<w:styles xmlns:w="%s">`, nsW) +
		`<w:docDefaults>` +
		fmt.Sprintf(`<w:rPrDefault><w:rPr><w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:eastAsia="%[1]s" w:cs="%[1]s"/>`, xmlAttr(theme.BodyFont)) +
		fmt.Sprintf(`<w:sz w:val="%[1]d"/><w:szCs w:val="%[1]d"/><w:lang w:val="en-US"/></w:rPr></w:rPrDefault>`, bodySize) +
		`<w:pPrDefault><w:pPr><w:spacing w:after="160" w:line="259" w:lineRule="auto"/></w:pPr></w:pPrDefault>` +
		`</w:docDefaults>` +
		`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
		`<w:style w:type="character" w:default="1" w:styleId="DefaultParagraphFont"><w:name w:val="Default Paragraph Font"/><w:uiPriority w:val="1"/><w:semiHidden/></w:style>` +
		`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
		`<w:pPr><w:spacing w:after="80" w:line="240" w:lineRule="auto"/><w:contextualSpacing/></w:pPr>` +
		`<w:rPr><w:rFonts w:asciiTheme="majorHAnsi" w:hAnsiTheme="majorHAnsi"/><w:spacing w:val="-10"/><w:kern w:val="28"/><w:sz w:val="56"/><w:szCs w:val="56"/></w:rPr></w:style>` +
		headingStyleXML(1, 32, "2F5496") +
		headingStyleXML(2, 26, "2F5496") +
		headingStyleXML(3, 24, "1F3763") +
		`<w:style w:type="paragraph" w:styleId="IntenseQuote"><w:name w:val="Intense Quote"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:uiPriority w:val="30"/><w:qFormat/>` +
		`<w:pPr><w:pBdr><w:top w:val="single" w:sz="4" w:space="10" w:color="4472C4"/><w:bottom w:val="single" w:sz="4" w:space="10" w:color="4472C4"/></w:pBdr>` +
		`<w:spacing w:before="360" w:after="360"/><w:ind w:left="864" w:right="864"/></w:pPr>` +
		`<w:rPr><w:i/><w:iCs/><w:color w:val="4472C4"/></w:rPr></w:style>` +
		`<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/><w:uiPriority w:val="99"/><w:unhideWhenUsed/>` +
		`<w:pPr><w:numPr><w:numId w:val="` + bulletNumID + `"/></w:numPr><w:contextualSpacing/></w:pPr></w:style>` +
		`<w:style w:type="table" w:default="1" w:styleId="TableNormal"><w:name w:val="Normal Table"/><w:uiPriority w:val="99"/><w:semiHidden/><w:unhideWhenUsed/>` +
		`<w:tblPr><w:tblInd w:w="0" w:type="dxa"/><w:tblCellMar><w:top w:w="0" w:type="dxa"/><w:left w:w="108" w:type="dxa"/><w:bottom w:w="0" w:type="dxa"/><w:right w:w="108" w:type="dxa"/></w:tblCellMar></w:tblPr></w:style>` +
		tableStyleXML(theme.TableStyle) +
		`</w:styles>`
}

func headingStyleXML(level, halfPoints int, color string) string {
	return fmt.Sprintf(`<w:style w:type="paragraph" w:styleId="Heading%[1]d"><w:name w:val="heading %[1]d"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:uiPriority w:val="9"/><w:qFormat/>`+
		`<w:pPr><w:keepNext/><w:keepLines/><w:spacing w:before="%[4]d" w:after="0"/><w:outlineLvl w:val="%[5]d"/></w:pPr>`+
		`<w:rPr><w:rFonts w:asciiTheme="majorHAnsi" w:hAnsiTheme="majorHAnsi"/><w:b/><w:color w:val="%[3]s"/><w:sz w:val="%[2]d"/><w:szCs w:val="%[2]d"/></w:rPr></w:style>`,
		level, halfPoints, color, 280-40*level, level-1)
}

// tableStyleXML declares the grid table style with a bold, bordered header
// row. The style ID is taken from the theme so custom IDs still resolve.
func tableStyleXML(styleID string) string {
	id := xmlAttr(styleID)
	border := `w:val="single" w:sz="8" w:space="0" w:color="4472C4"`
	return fmt.Sprintf(`<w:style w:type="table" w:styleId="%s"><w:name w:val="%s"/><w:basedOn w:val="TableNormal"/><w:uiPriority w:val="62"/>`, id, id) +
		`<w:pPr><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr>` +
		`<w:tblPr><w:tblStyleRowBandSize w:val="1"/><w:tblStyleColBandSize w:val="1"/><w:tblBorders>` +
		`<w:top ` + border + `/><w:left ` + border + `/><w:bottom ` + border + `/><w:right ` + border + `/>` +
		`<w:insideH ` + border + `/><w:insideV ` + border + `/></w:tblBorders></w:tblPr>` +
		`<w:tblStylePr w:type="firstRow"><w:pPr><w:spacing w:before="0" w:after="0" w:line="240" w:lineRule="auto"/></w:pPr>` +
		`<w:rPr><w:b/><w:bCs/></w:rPr><w:tblPr/><w:tcPr><w:tcBorders><w:bottom w:val="single" w:sz="18" w:space="0" w:color="4472C4"/></w:tcBorders></w:tcPr></w:tblStylePr>` +
		`<w:tblStylePr w:type="band1Horz"><w:tblPr/><w:tcPr><w:shd w:val="clear" w:color="auto" w:fill="D9E2F3"/></w:tcPr></w:tblStylePr>` +
		`</w:style>`
}
