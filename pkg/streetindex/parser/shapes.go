package parser

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/streetindex-go/pkg/streetindex/models"
)

// shapeParseResult holds intermediate parsing results for one text box.
type shapeParseResult struct {
	text     string
	left     int64 // EMU
	top      int64 // EMU
	width    int64 // EMU
	height   int64 // EMU
	hasXfrm  bool
	rotation float64 // degrees
}

// label converts a parse result to a label rectangle, or reports false if
// the shape cannot stand for a street label.
func (pr shapeParseResult) label() (models.LabelRect, bool) {
	if pr.text == "" || !pr.hasXfrm {
		return models.LabelRect{}, false
	}
	// Rotated grids and labels are not supported.
	if math.Abs(pr.rotation) >= 1e-6 {
		return models.LabelRect{}, false
	}
	return models.LabelRect{
		StreetName: pr.text,
		XFromLeft:  EMUToMillimeters(pr.left),
		YFromTop:   EMUToMillimeters(pr.top),
		Width:      EMUToMillimeters(pr.width),
		Height:     EMUToMillimeters(pr.height),
	}, true
}

// ExtractLabelShapes reads street labels placed as text boxes on the sheets
// of an xlsx file. It returns a map of sheet name to label rectangles.
// Connectors, shapes without text and rotated shapes are skipped.
func ExtractLabelShapes(xlsxPath string) (map[string][]models.LabelRect, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	sheetDrawingMap, err := getSheetDrawingMap(&r.Reader)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]models.LabelRect)
	for sheetName, drawingPath := range sheetDrawingMap {
		labels, err := parseDrawingFile(&r.Reader, drawingPath)
		if err != nil {
			result[sheetName] = []models.LabelRect{}
			continue
		}
		result[sheetName] = labels
	}

	return result, nil
}

// getSheetDrawingMap returns a mapping of sheet names to their drawing XML paths.
func getSheetDrawingMap(r *zip.Reader) (map[string]string, error) {
	result := make(map[string]string)

	// Read workbook.xml to get sheet names and rIds
	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil || workbookXML == nil {
		return result, err
	}

	sheetsInfo := parseWorkbookSheets(workbookXML)
	if len(sheetsInfo) == 0 {
		return result, nil
	}

	// Read workbook.xml.rels to map rId to sheet file
	wbRelsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil || wbRelsXML == nil {
		return result, err
	}

	sheetFiles := parseWorkbookRels(wbRelsXML, sheetsInfo)

	for sheetName, sheetPath := range sheetFiles {
		relsPath := strings.Replace(sheetPath, "worksheets/", "worksheets/_rels/", 1)
		relsPath = strings.Replace(relsPath, ".xml", ".xml.rels", 1)

		sheetRelsXML, err := readZipFile(r, relsPath)
		if err != nil || sheetRelsXML == nil {
			continue
		}

		drawingPath := findDrawingRelationship(sheetRelsXML)
		if drawingPath != "" {
			result[sheetName] = resolveRelativePath(drawingPath, "xl/drawings")
		}
	}

	return result, nil
}

// parseDrawingFile parses a drawing XML file and extracts label rectangles.
func parseDrawingFile(r *zip.Reader, drawingPath string) ([]models.LabelRect, error) {
	drawingXML, err := readZipFile(r, drawingPath)
	if err != nil {
		return nil, err
	}

	var labels []models.LabelRect
	for _, pr := range parseDrawingXML(drawingXML) {
		if label, ok := pr.label(); ok {
			labels = append(labels, label)
		}
	}
	return labels, nil
}

// parseDrawingXML parses drawing XML content and returns shape parse results.
func parseDrawingXML(data []byte) []shapeParseResult {
	var results []shapeParseResult

	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok {
			switch se.Name.Local {
			case "twoCellAnchor", "oneCellAnchor", "absoluteAnchor":
				results = append(results, parseShapeContainer(decoder)...)
			}
		}
	}

	return results
}

// parseShapeContainer parses the children of an anchor or group shape.
// Connectors are consumed and dropped.
func parseShapeContainer(decoder *xml.Decoder) []shapeParseResult {
	var results []shapeParseResult
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sp":
				results = append(results, parseShapeElement(decoder))
			case "grpSp":
				results = append(results, parseShapeContainer(decoder)...)
			case "cxnSp":
				_ = decoder.Skip()
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}

	return results
}

// parseShapeElement parses a single shape element.
func parseShapeElement(decoder *xml.Decoder) shapeParseResult {
	var pr shapeParseResult
	var text strings.Builder

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "xfrm":
				parseXfrm(decoder, t, &pr)
			case "t":
				if txt, err := readElementText(decoder); err == nil {
					text.WriteString(txt)
				}
			case "p":
				// paragraphs of one label are joined by a space
				if text.Len() > 0 {
					text.WriteByte(' ')
				}
				depth++
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}

	pr.text = strings.Join(strings.Fields(text.String()), " ")
	return pr
}

// parseXfrm parses an xfrm element for position, size and rotation.
func parseXfrm(decoder *xml.Decoder, start xml.StartElement, pr *shapeParseResult) {
	for _, attr := range start.Attr {
		if attr.Name.Local == "rot" {
			if rotEmu, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
				pr.rotation = float64(rotEmu) / 60000.0
			}
		}
	}

	var hasOff, hasExt bool
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "off":
				hasOff = true
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "x":
						pr.left, _ = strconv.ParseInt(attr.Value, 10, 64)
					case "y":
						pr.top, _ = strconv.ParseInt(attr.Value, 10, 64)
					}
				}
			case "ext":
				hasExt = true
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "cx":
						pr.width, _ = strconv.ParseInt(attr.Value, 10, 64)
					case "cy":
						pr.height, _ = strconv.ParseInt(attr.Value, 10, 64)
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	pr.hasXfrm = hasOff && hasExt
}

// Helper functions

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}

func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return baseDir + "/" + target
}

func parseWorkbookSheets(data []byte) map[string]string {
	result := make(map[string]string) // rId -> sheet name
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var name, rID string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					name = attr.Value
				case "id":
					rID = attr.Value
				}
			}
			if name != "" && rID != "" {
				result[rID] = name
			}
		}
	}

	return result
}

func parseWorkbookRels(data []byte, sheetsInfo map[string]string) map[string]string {
	result := make(map[string]string) // sheet name -> file path
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if sheetName, ok := sheetsInfo[rID]; ok && strings.Contains(strings.ToLower(target), "worksheet") {
				result[sheetName] = resolveRelativePath(target, "xl")
			}
		}
	}

	return result
}

func findDrawingRelationship(data []byte) string {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var relType, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Type":
					relType = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if strings.HasSuffix(strings.ToLower(relType), "/drawing") {
				return target
			}
		}
	}

	return ""
}
