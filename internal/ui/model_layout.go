package ui

import (
	"github.com/mattn/go-runewidth"
)

const (
	labelWidth     = 10
	paneChrome     = 2
	chromeRows     = 3
	headerKeyRatio = 3
	submitWidth    = 12
)

func (m *Model) formRows() int {
	headerRows := len(m.headers)
	if headerRows == 0 {
		headerRows = 1
	}
	// endpoint, headers title, header rows, body, method and submit
	return 1 + 1 + headerRows + bodyHeight + 1
}

func (m *Model) innerWidth() int {
	w := m.width - paneChrome - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) applyLayout() {
	if !m.ready {
		return
	}
	inner := m.innerWidth()

	prefixWidth := runewidth.StringWidth(m.ctrl.Prefix())
	endpointWidth := inner - labelWidth - prefixWidth - 1
	if endpointWidth < 8 {
		endpointWidth = 8
	}
	m.endpoint.Width = endpointWidth
	m.body.SetWidth(inner - labelWidth)
	m.applyHeaderWidths()

	outputHeight := m.height - chromeRows - (m.formRows() + paneChrome) - paneChrome - 1
	if outputHeight < minOutputHeight {
		outputHeight = minOutputHeight
	}
	m.output.Width = inner
	m.output.Height = outputHeight

	m.catalogList.SetSize(inner, m.height-chromeRows-paneChrome)
	m.refreshOutput()
}

func (m *Model) applyHeaderWidths() {
	if !m.ready {
		return
	}
	avail := m.innerWidth() - labelWidth - 3
	keyWidth := avail / headerKeyRatio
	valueWidth := avail - keyWidth - 3
	for i := range m.headers {
		m.headers[i].key.Width = keyWidth
		m.headers[i].value.Width = valueWidth
	}
}
