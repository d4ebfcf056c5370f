package dmr

import "testing"

func TestAssembleTalkerAlias_PlainBytesFormat(t *testing.T) {
	var headerBlock [7]byte
	text := "HI"
	headerBlock[0] = byte(TAFormatUTF8)<<6 | byte(len(text))
	copy(headerBlock[1:], text)

	header := DecodeTalkerAliasHeader(headerBlock)
	if header.Format != TAFormatUTF8 {
		t.Fatalf("Format = %v, want TAFormatUTF8", header.Format)
	}
	if header.Length != len(text) {
		t.Fatalf("Length = %d, want %d", header.Length, len(text))
	}

	got := AssembleTalkerAlias(header, nil)
	if got != text {
		t.Fatalf("AssembleTalkerAlias = %q, want %q", got, text)
	}
}

func TestAssembleTalkerAlias_ConcatenatesContinuationBlocks(t *testing.T) {
	var headerBlock [7]byte
	headerBlock[0] = byte(TAFormatUTF8)<<6 | 9
	copy(headerBlock[1:], "ABCDEF")
	header := DecodeTalkerAliasHeader(headerBlock)

	var cont TalkerAliasBlock
	copy(cont.Data[:], "GHI")

	got := AssembleTalkerAlias(header, []TalkerAliasBlock{cont})
	if got != "ABCDEFGHI" {
		t.Fatalf("AssembleTalkerAlias = %q, want %q", got, "ABCDEFGHI")
	}
}
