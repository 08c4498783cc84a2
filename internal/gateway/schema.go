package gateway

// 진료 이력 조회 구분 코드.
const (
	// inquiryTypeOutpatient 는 외래 진료 이력 조회.
	inquiryTypeOutpatient = 2
	// inquiryTypeInpatient 는 입퇴원 이력 조회.
	inquiryTypeInpatient = 3
)

// codeDivisionOutpatient 는 수납 목록 조회의 기본 구분 코드 (외래).
const codeDivisionOutpatient = "O"

// loginRequest 는 로그인 요청의 JSON 구조.
type loginRequest struct {
	// Username 은 포털 회원 ID.
	Username string `json:"username" binding:"required"`
	// Password 는 포털 로그인 비밀번호.
	Password string `json:"password" binding:"required"`
}

// loginResponse 는 로그인 응답의 JSON 구조.
type loginResponse struct {
	// Success 는 로그인 성공 여부.
	Success bool `json:"success"`
	// Message 는 사람이 읽는 결과 메시지.
	Message string `json:"message"`
	// AccessToken 은 발급된 베어러 토큰. 실패 시에는 없다.
	AccessToken string `json:"access_token,omitempty"`
	// TokenType 은 토큰 종별. 항상 "bearer".
	TokenType string `json:"token_type"`
}

// apiResponse 는 조회 엔드포인트의 공통 응답 봉투.
// 실패 시 Data 는 없고 Message 가 비어 있지 않다.
type apiResponse struct {
	// Success 는 조회 성공 여부.
	Success bool `json:"success"`
	// Message 는 사람이 읽는 결과 메시지.
	Message string `json:"message"`
	// Data 는 포털이 반환한 조회 결과 그대로. 스키마는 포털이 소유한다.
	Data any `json:"data,omitempty"`
}

// dateRangeRequest 는 기간 조회 요청의 공통 JSON 구조.
// 날짜는 YYYYMMDD 형식의 8자리 숫자이며 기간은 양끝 포함이다.
type dateRangeRequest struct {
	// StartDate 는 조회 시작 날짜 (YYYYMMDD).
	StartDate int `json:"start_date" binding:"required"`
	// EndDate 는 조회 종료 날짜 (YYYYMMDD).
	EndDate int `json:"end_date" binding:"required"`
	// HospitalCode 는 병원 코드. 생략하면 설정의 기본값을 쓴다.
	HospitalCode string `json:"hospital_code"`
}

// applyDefaults 는 생략된 선택 필드에 기본값을 채운다.
func (r *dateRangeRequest) applyDefaults(defaultHospitalCode string) {
	if r.HospitalCode == "" {
		r.HospitalCode = defaultHospitalCode
	}
}

// careHistoryRequest 는 진료 이력 조회 요청의 JSON 구조.
// inquiry_type 은 받기는 하지만 엔드포인트마다 고정된 구분 코드를 쓴다.
type careHistoryRequest struct {
	dateRangeRequest
	// InquiryType 은 조회 구분 (2: 외래, 3: 입퇴원).
	InquiryType int `json:"inquiry_type"`
}

// paymentListRequest 는 수납 목록 조회 요청의 JSON 구조.
type paymentListRequest struct {
	dateRangeRequest
	// CodeDivision 은 구분 코드 (O: 외래, I: 입원). 생략하면 외래.
	CodeDivision string `json:"code_division"`
}

// applyDefaults 는 생략된 선택 필드에 기본값을 채운다.
func (r *paymentListRequest) applyDefaults(defaultHospitalCode string) {
	r.dateRangeRequest.applyDefaults(defaultHospitalCode)
	if r.CodeDivision == "" {
		r.CodeDivision = codeDivisionOutpatient
	}
}

// paymentDetailRequest 는 수납 상세 조회 요청의 JSON 구조.
type paymentDetailRequest struct {
	// MdrpNo 는 수납 번호.
	MdrpNo int `json:"mdrp_no" binding:"required"`
	// HospitalCode 는 병원 코드. 생략하면 설정의 기본값을 쓴다.
	HospitalCode string `json:"hospital_code"`
}

// applyDefaults 는 생략된 선택 필드에 기본값을 채운다.
func (r *paymentDetailRequest) applyDefaults(defaultHospitalCode string) {
	if r.HospitalCode == "" {
		r.HospitalCode = defaultHospitalCode
	}
}
