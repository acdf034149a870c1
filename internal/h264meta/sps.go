package h264meta

const (
	minImageWidth  = 160
	maxImageWidth  = 4096
	minImageHeight = 120
	maxImageHeight = 3072
)

type spsInfo struct {
	profileIDC     uint32
	chromaFormat   uint32
	frameMbsOnly   bool
	width          int
	height         int
	validDimension bool
}

// vuiTimingState carries the VUI fields picture timing SEI messages need.
// It is scoped to one document and reset when a new sub-document starts.
type vuiTimingState struct {
	unitsInTick           uint32
	timeScale             uint32
	hrdPresent            bool
	cpbRemovalDelayLength int
	dpbOutputDelayLength  int
	timeOffsetLength      int
	picStructPresent      bool
}

// parseSPS walks a sequence parameter set RBSP far enough to compute the
// cropped picture dimensions, and optionally on into the VUI timing
// fields. It returns ok=false when the bitstream ran out before the
// dimensions were complete.
func parseSPS(rbsp []byte, wantTiming bool, vui *vuiTimingState) (spsInfo, bool) {
	bc := newBitCursor(rbsp)
	var info spsInfo

	info.profileIDC = bc.readBits(8)
	bc.skipBits(16) // constraint flags + level_idc
	_ = bc.readUE() // seq_parameter_set_id

	info.chromaFormat = 1
	if info.profileIDC >= 100 {
		info.chromaFormat = bc.readUE()
		scalingLists := 8
		if info.chromaFormat == 3 {
			bc.skipBits(1) // separate_colour_plane_flag
			scalingLists = 12
		}
		_ = bc.readUE() // bit_depth_luma_minus8
		_ = bc.readUE() // bit_depth_chroma_minus8
		bc.skipBits(1)  // qpprime_y_zero_transform_bypass_flag
		if bc.readBits(1) == 1 {
			for i := 0; i < scalingLists; i++ {
				if bc.readBits(1) == 1 {
					size := 16
					if i >= 6 {
						size = 64
					}
					skipScalingList(bc, size)
				}
			}
		}
	}

	_ = bc.readUE() // log2_max_frame_num_minus4
	switch bc.readUE() {
	case 0:
		_ = bc.readUE() // log2_max_pic_order_cnt_lsb_minus4
	case 1:
		bc.skipBits(1) // delta_pic_order_always_zero_flag
		_ = bc.readSE()
		_ = bc.readSE()
		n := bc.readUE()
		for i := uint32(0); i < n && !bc.exhausted; i++ {
			_ = bc.readSE()
		}
	}

	_ = bc.readUE() // max_num_ref_frames
	bc.skipBits(1)  // gaps_in_frame_num_value_allowed_flag
	widthInMbsMinus1 := bc.readUE()
	heightInMapUnitsMinus1 := bc.readUE()
	frameMbsOnly := bc.readBits(1)
	info.frameMbsOnly = frameMbsOnly == 1
	if frameMbsOnly == 0 {
		bc.skipBits(1) // mb_adaptive_frame_field_flag
	}
	bc.skipBits(1) // direct_8x8_inference_flag

	width := int(widthInMbsMinus1+1) * 16
	height := int(2-frameMbsOnly) * int(heightInMapUnitsMinus1+1) * 16
	if bc.readBits(1) == 1 {
		cropLeft := int(bc.readUE())
		cropRight := int(bc.readUE())
		cropTop := int(bc.readUE())
		cropBottom := int(bc.readUE())
		cropUnit := 4 - 2*int(frameMbsOnly)
		width -= 4 * (cropLeft + cropRight)
		height -= cropUnit * (cropTop + cropBottom)
	}
	if bc.exhausted {
		return spsInfo{}, false
	}
	if width >= minImageWidth && width <= maxImageWidth &&
		height >= minImageHeight && height <= maxImageHeight {
		info.width = width
		info.height = height
		info.validDimension = true
	}

	if wantTiming && vui != nil {
		parseVUITiming(bc, vui)
	}
	return info, true
}

// skipScalingList advances past one scaling list. Values are discarded,
// only the bitstream position matters. Once a computed next value hits
// zero no further deltas follow, including when the very first delta
// zeroes it (the use-default-matrix signal).
func skipScalingList(bc *bitCursor, size int) {
	last := 8
	next := 8
	for i := 0; i < size && !bc.exhausted; i++ {
		if next != 0 {
			next = (last + int(bc.readSE())) & 0xff
		}
		if next != 0 {
			last = next
		}
	}
}

// parseVUITiming decodes the VUI up through pic_struct_present_flag.
// Everything before timing_info is skipped; the remainder of the VUI is
// never decoded.
func parseVUITiming(bc *bitCursor, vui *vuiTimingState) {
	if bc.readBits(1) != 1 { // vui_parameters_present_flag
		return
	}
	if bc.readBits(1) == 1 { // aspect_ratio_info_present_flag
		if bc.readBits(8) == 255 {
			bc.skipBits(32) // sar_width + sar_height
		}
	}
	if bc.readBits(1) == 1 { // overscan_info_present_flag
		bc.skipBits(1)
	}
	if bc.readBits(1) == 1 { // video_signal_type_present_flag
		bc.skipBits(4) // video_format + video_full_range_flag
		if bc.readBits(1) == 1 {
			bc.skipBits(24) // colour primaries, transfer, matrix
		}
	}
	if bc.readBits(1) == 1 { // chroma_loc_info_present_flag
		_ = bc.readUE()
		_ = bc.readUE()
	}
	if bc.readBits(1) == 1 { // timing_info_present_flag
		if bc.bitsLeft() < 65 {
			return
		}
		vui.unitsInTick = bc.readBits(32)
		vui.timeScale = bc.readBits(32)
		bc.skipBits(1) // fixed_frame_rate_flag
	}
	hrdPresent := false
	for i := 0; i < 2; i++ { // NAL HRD then VCL HRD
		if bc.readBits(1) != 1 {
			continue
		}
		hrdPresent = true
		cpbCntMinus1 := bc.readUE()
		bc.skipBits(8) // bit_rate_scale + cpb_size_scale
		for j := uint32(0); j <= cpbCntMinus1 && !bc.exhausted; j++ {
			_ = bc.readUE()
			_ = bc.readUE()
			bc.skipBits(1)
		}
		vui.cpbRemovalDelayLength = int(bc.readBits(5))
		vui.dpbOutputDelayLength = int(bc.readBits(5))
		vui.timeOffsetLength = int(bc.readBits(5))
	}
	if hrdPresent {
		bc.skipBits(1) // low_delay_hrd_flag
	}
	vui.hrdPresent = hrdPresent
	vui.picStructPresent = bc.readBits(1) == 1
	if bc.exhausted {
		vui.picStructPresent = false
	}
}
