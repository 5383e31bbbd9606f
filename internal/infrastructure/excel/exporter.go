// Package excel implementa las exportaciones XLSX: planilla de custodias de
// un técnico e informe de inventario por categoría.
package excel

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	appcustody "github.com/jhoicas/CampoStock-api/internal/application/custody"
	"github.com/jhoicas/CampoStock-api/internal/application/dto"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
)

var _ appcustody.SheetExcelGenerator = (*Exporter)(nil)

// Exporter genera archivos XLSX con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// GenerateCustodySheet genera la planilla de custodias y devuelve sus bytes.
func (e *Exporter) GenerateCustodySheet(_ context.Context, sheet *dto.CustodySheet) ([]byte, error) {
	headers := []string{"Categoria", "Item", "Série", "Qtd", "Unidade", "Entrega", "Devolução", "Motivo"}
	data := make([][]string, 0, len(sheet.Rows))
	for _, r := range sheet.Rows {
		returned := ""
		if r.ReturnedAt != nil {
			returned = r.ReturnedAt.Format("02/01/2006")
		}
		data = append(data, []string{
			r.Category,
			r.ProductName,
			r.SerialNumber,
			strconv.Itoa(r.Quantity),
			r.Unit,
			r.AssignedAt.Format("02/01/2006"),
			returned,
			r.ReturnReason,
		})
	}
	title := fmt.Sprintf("Custódias — %s (%s)", sheet.TechnicianName, sheet.Registration)
	return buildWorkbook("Custodias", title, headers, data)
}

// GenerateInventoryReport genera el informe de inventario: una fila por
// producto con su stock, mínimo y estado (ok/bajo/cero).
func (e *Exporter) GenerateInventoryReport(_ context.Context, products []*entity.Product) ([]byte, error) {
	headers := []string{"Código", "Nome", "Categoria", "Seriado", "Estoque", "Mínimo", "Unidade", "Situação"}
	data := make([][]string, 0, len(products))
	for _, p := range products {
		situation := "ok"
		switch {
		case p.CurrentStock == 0:
			situation = "zerado"
		case p.MinStock > 0 && p.CurrentStock < p.MinStock:
			situation = "baixo"
		}
		serialized := "não"
		if p.IsSerialized {
			serialized = "sim"
		}
		data = append(data, []string{
			p.Code, p.Name, p.Category, serialized,
			strconv.Itoa(p.CurrentStock), strconv.Itoa(p.MinStock), p.Unit, situation,
		})
	}
	return buildWorkbook("Inventario", "Relatório de Inventário", headers, data)
}

// buildWorkbook arma un libro con fila de título, cabecera estilizada y datos.
func buildWorkbook(sheetName, title string, headers []string, data [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo de cabecera: %w", err)
	}

	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return nil, fmt.Errorf("excel: título: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range data {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+3)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		f.SetColWidth(sheetName, col, col, 16)
	}

	if sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
